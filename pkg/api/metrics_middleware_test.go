package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePathForMetrics(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/users", "/users"},
		{"/users/1", "/users/{id}"},
		{"/users/42", "/users/{id}"},
		{"/users/abc", "/users/{id}"},
		{"/users/", "/users/"},
		{"/health", "/health"},
		{"/status", "/status"},
		{"/", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePathForMetrics(tt.path), "path %q", tt.path)
	}
}

func TestMetricsMiddlewareRecordsRequests(t *testing.T) {
	s := New(nil)
	doRequest(t, s, "POST", "/users", `{"name": "Alice", "email": "a@example.com"}`)
	doRequest(t, s, "GET", "/users/1", "")
	doRequest(t, s, "GET", "/users/99", "")

	rec := doRequest(t, s, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `userd_requests_total{method="POST",path="/users",status="201"}`)
	assert.Contains(t, body, `userd_requests_total{method="GET",path="/users/{id}",status="200"}`)
	assert.Contains(t, body, `userd_requests_total{method="GET",path="/users/{id}",status="404"}`)
	assert.Contains(t, body, `userd_request_duration_seconds_bucket{le="+Inf",method="GET",path="/users/{id}"}`)
	assert.Contains(t, body, `userd_errors_total{kind="not_found"}`)
}

func TestMetricsEndpointNotSelfObserved(t *testing.T) {
	s := New(nil)
	doRequest(t, s, "GET", "/metrics", "")
	doRequest(t, s, "GET", "/health", "")

	rec := doRequest(t, s, "GET", "/metrics", "")
	body := rec.Body.String()

	assert.NotContains(t, body, `path="/metrics"`)
	assert.NotContains(t, body, `path="/health"`)
}

func TestMetricsEndpointRefreshesUserGauge(t *testing.T) {
	s := New(nil)
	doRequest(t, s, "POST", "/users", `{"name": "Alice", "email": "a@example.com"}`)
	doRequest(t, s, "POST", "/users", `{"name": "Bob", "email": "b@example.com"}`)

	rec := doRequest(t, s, "GET", "/metrics", "")

	assert.Contains(t, rec.Body.String(), "userd_users_total 2")
}
