package testing

import (
	"fmt"
	"net"
	"net/http"
	stdtesting "testing"
	"time"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/api"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/cli"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/config"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// UserServer runs a real userd API server for the duration of a test.
// Construct with New, configure seeds, then call Start.
type UserServer struct {
	t       stdtesting.TB
	server  *api.Server
	client  cli.Client
	seeds   []userstore.Seed
	baseURL string
	started bool
}

// New creates a test server. The server is stopped automatically when
// the test completes, so a defer is optional.
func New(t stdtesting.TB) *UserServer {
	t.Helper()
	return &UserServer{t: t}
}

// Seed registers a user record to create at startup and returns the
// server for chaining. Seeds must be registered before Start.
func (u *UserServer) Seed(name, email string) *UserServer {
	u.t.Helper()
	if u.started {
		u.t.Fatal("Seed must be called before Start")
	}
	u.seeds = append(u.seeds, userstore.Seed{Name: name, Email: email})
	return u
}

// SeedUsers registers several seed records at once.
func (u *UserServer) SeedUsers(seeds ...userstore.Seed) *UserServer {
	u.t.Helper()
	if u.started {
		u.t.Fatal("SeedUsers must be called before Start")
	}
	u.seeds = append(u.seeds, seeds...)
	return u
}

// Start boots the server on a free localhost port and returns its base
// URL. Calling Start again returns the same URL.
func (u *UserServer) Start() string {
	u.t.Helper()

	if u.started {
		return u.baseURL
	}

	cfg := config.Default()
	cfg.Server.Host = "localhost"
	cfg.Server.Port = freePort(u.t)

	u.server = api.New(cfg, api.WithStore(userstore.NewSeeded(u.seeds)))
	if err := u.server.Start(); err != nil {
		u.t.Fatalf("failed to start server: %v", err)
	}

	u.baseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	u.client = cli.NewClient(u.baseURL, cli.WithTimeout(5*time.Second))
	u.started = true

	u.t.Cleanup(u.Stop)

	waitHealthy(u.t, u.baseURL)
	return u.baseURL
}

// Stop shuts the server down. Safe to call more than once, and safe to
// skip entirely since Start registers a cleanup.
func (u *UserServer) Stop() {
	if !u.started {
		return
	}
	_ = u.server.Stop()
	u.started = false
}

// URL returns the base URL of the running server, or "" before Start.
func (u *UserServer) URL() string {
	return u.baseURL
}

// Client returns a typed client pointed at the running server.
func (u *UserServer) Client() cli.Client {
	u.t.Helper()
	if !u.started {
		u.t.Fatal("Client requires a started server; call Start first")
	}
	return u.client
}

// Store returns the backing user store for direct state inspection.
func (u *UserServer) Store() *userstore.Store {
	u.t.Helper()
	if u.server == nil {
		u.t.Fatal("Store requires a started server; call Start first")
	}
	return u.server.Store()
}

// CreateUser creates a record through the API, failing the test on any
// error.
func (u *UserServer) CreateUser(name, email string) *userstore.User {
	u.t.Helper()
	user, err := u.Client().CreateUser(name, email)
	if err != nil {
		u.t.Fatalf("CreateUser(%q, %q) failed: %v", name, email, err)
	}
	return user
}

// Reset drops every record created during the test and re-applies the
// seeds. Use it between cases that share one server.
func (u *UserServer) Reset() {
	u.t.Helper()
	u.Store().Reset()
}

// freePort returns an available localhost TCP port.
func freePort(t stdtesting.TB) int {
	t.Helper()
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to find a free port: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

// waitHealthy polls the health endpoint until the server answers.
func waitHealthy(t stdtesting.TB, baseURL string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server at %s never became healthy", baseURL)
}
