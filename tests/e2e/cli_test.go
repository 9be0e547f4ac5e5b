package e2e_test

import (
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/api"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/config"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary builds the userd binary once for all testscript tests.
func buildBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		binaryPath = filepath.Join(os.TempDir(), "userd_testscript_bin")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/userd")
		if out, err := buildCmd.CombinedOutput(); err != nil {
			buildErr = err
			t.Logf("Failed to build CLI: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return binaryPath
}

func TestCLIIntegration(t *testing.T) {
	// Build the userd binary the scripts will be invoking.
	bin := buildBinary(t)

	// Start a server directly in Go so the scripts have something to talk
	// to without managing a background process themselves.
	port := getFreePort(t)

	cfg := config.Default()
	cfg.Server.Port = port

	server := api.New(cfg,
		api.WithStore(userstore.NewSeeded([]userstore.Seed{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com"},
		})),
		api.WithVersion("e2e"),
	)
	if err := server.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	// The testscript subtests run in parallel and only resume after this
	// function returns, so the server must be stopped via t.Cleanup (which
	// runs after all subtests finish) rather than defer.
	t.Cleanup(func() { server.Stop() })

	serverURL := "http://localhost:" + strconv.Itoa(port)
	waitForServer(t, serverURL+"/health")

	// Run testscript against all .txt files in testdata/
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			binDir := filepath.Dir(bin)
			env.Setenv("PATH", binDir+string(os.PathListSeparator)+env.Getenv("PATH"))
			env.Setenv("USERD_BIN", bin)
			env.Setenv("USERD_URL", serverURL)
			return nil
		},
	})
}

func getFreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to get port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func waitForServer(t *testing.T, url string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == 200 {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server at %s never became healthy", url)
}

// TestMain acts as the main entrypoint. Testscript requires its own Main wrapper.
func TestMain(m *testing.M) {
	// Clean up the binary after all tests finish
	defer func() {
		if binaryPath != "" {
			os.Remove(binaryPath)
		}
	}()

	os.Exit(testscript.RunMain(m, map[string]func() int{
		// The userd binary is compiled once and put on PATH instead of
		// being registered as an in-process command.
	}))
}
