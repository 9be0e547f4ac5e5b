package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/api/types"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// Client provides methods for talking to a running userd server.
type Client interface {
	// ListUsers returns all user records in creation order.
	ListUsers() ([]*userstore.User, error)
	// GetUser returns a single user by id.
	GetUser(id int) (*userstore.User, error)
	// CreateUser creates a new user record.
	CreateUser(name, email string) (*userstore.User, error)
	// UpdateUser replaces the name and email of an existing user.
	UpdateUser(id int, name, email string) (*userstore.User, error)
	// DeleteUser removes a user by id.
	DeleteUser(id int) error
	// Health checks whether the server is responding.
	Health() error
	// GetStatus returns the server's status document.
	GetStatus() (*types.ServerStatus, error)
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// userClient implements Client over HTTP.
type userClient struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a client.
type ClientOption func(*userClient)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *userClient) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client for the userd API at baseURL
// (e.g., "http://localhost:8080").
func NewClient(baseURL string, opts ...ClientOption) Client {
	c := &userClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUsers returns all user records.
func (c *userClient) ListUsers() ([]*userstore.User, error) {
	resp, err := c.get("/users")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var users []*userstore.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return users, nil
}

// GetUser returns a single user by id.
func (c *userClient) GetUser(id int) (*userstore.User, error) {
	resp, err := c.get("/users/" + strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var user userstore.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &user, nil
}

// CreateUser creates a new user record.
func (c *userClient) CreateUser(name, email string) (*userstore.User, error) {
	body, err := json.Marshal(types.UserRequest{Name: name, Email: email})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.post("/users", body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.parseError(resp)
	}

	var created userstore.User
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &created, nil
}

// UpdateUser replaces the name and email of an existing user.
func (c *userClient) UpdateUser(id int, name, email string) (*userstore.User, error) {
	body, err := json.Marshal(types.UserRequest{Name: name, Email: email})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.put("/users/"+strconv.Itoa(id), body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var updated userstore.User
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes a user by id.
func (c *userClient) DeleteUser(id int) error {
	resp, err := c.delete("/users/" + strconv.Itoa(id))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return c.parseError(resp)
	}
	return nil
}

// Health checks whether the server is responding.
func (c *userClient) Health() error {
	resp, err := c.get("/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	return nil
}

// GetStatus returns the server's status document.
func (c *userClient) GetStatus() (*types.ServerStatus, error) {
	resp, err := c.get("/status")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var status types.ServerStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &status, nil
}

// get performs an HTTP GET request.
func (c *userClient) get(path string) (*http.Response, error) {
	return c.doRequest(http.MethodGet, path, nil)
}

// post performs an HTTP POST request.
func (c *userClient) post(path string, body []byte) (*http.Response, error) {
	return c.doRequest(http.MethodPost, path, body)
}

// put performs an HTTP PUT request.
func (c *userClient) put(path string, body []byte) (*http.Response, error) {
	return c.doRequest(http.MethodPut, path, body)
}

// delete performs an HTTP DELETE request.
func (c *userClient) delete(path string) (*http.Response, error) {
	return c.doRequest(http.MethodDelete, path, nil)
}

// doRequest performs an HTTP request.
func (c *userClient) doRequest(method, path string, body []byte) (*http.Response, error) {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			StatusCode: 0,
			ErrorCode:  "connection_error",
			Message:    fmt.Sprintf("cannot connect to userd at %s: %v", c.baseURL, err),
		}
	}
	return resp, nil
}

// parseError turns a non-success response into an APIError. The /users
// endpoints report failures as plain text ("User not found"); ambient
// endpoints use a JSON error envelope. Both shapes are handled.
func (c *userClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  errResp.Error,
			Message:    errResp.Message,
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		code := "unknown_error"
		switch resp.StatusCode {
		case http.StatusNotFound:
			code = "not_found"
		case http.StatusBadRequest:
			code = "bad_request"
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  code,
			Message:    text,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  "unknown_error",
		Message:    fmt.Sprintf("server returned status %d", resp.StatusCode),
	}
}

// FormatConnectionError returns a user-friendly error message for connection failures.
func FormatConnectionError(err error) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.ErrorCode == "connection_error" {
		return fmt.Sprintf(`Error: %s

Suggestions:
  • Start the server: userd serve
  • Check if the server is running on the expected port
  • Point the CLI at the right instance with --url or USERD_URL`, apiErr.Message)
	}
	return err.Error()
}

// FormatNotFoundError returns a user-friendly message for a missing user id.
func FormatNotFoundError(id int) string {
	return fmt.Sprintf(`Error: user not found: %d

Suggestions:
  • List existing users with: userd users list
  • Verify you're connected to the right server`, id)
}
