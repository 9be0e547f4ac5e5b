package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// TestHandleHealth tests the GET /health handler.
func TestHandleHealth(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		s := New(nil)

		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()

		s.handleHealth(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Status)
	})
}

// TestHandleGetStatus tests the GET /status handler.
func TestHandleGetStatus(t *testing.T) {
	t.Run("reports user count, port, and version", func(t *testing.T) {
		store := userstore.NewSeeded([]userstore.Seed{
			{Name: "Alice", Email: "alice@example.com"},
		})
		s := New(nil, WithStore(store), WithVersion("1.2.3"))

		req := httptest.NewRequest("GET", "/status", nil)
		rec := httptest.NewRecorder()

		s.handleGetStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ServerStatus
		err := json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "running", resp.Status)
		assert.Equal(t, 8080, resp.Port)
		assert.Equal(t, 1, resp.UserCount)
		assert.Equal(t, "1.2.3", resp.Version)
	})

	t.Run("version defaults to dev", func(t *testing.T) {
		s := New(nil)

		req := httptest.NewRequest("GET", "/status", nil)
		rec := httptest.NewRecorder()

		s.handleGetStatus(rec, req)

		var resp ServerStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "dev", resp.Version)
	})
}
