package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusOK, map[string]string{"name": "John Doe"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		err := json.Unmarshal(rec.Body.Bytes(), &result)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", result["name"])
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteText(rec, http.StatusNotFound, "User not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "User not found\n", rec.Body.String())
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "invalid_body", result["error"])
	assert.Equal(t, "Request body is not valid JSON", result["message"])
}

func TestWriteOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteOK(rec, []string{"a", "b"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteCreated(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteCreated(rec, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var result map[string]int
	err := json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, 1, result["id"])
}

func TestWriteNoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteNoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteInternalError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteInternalError(rec, "internal_error", "Something went wrong")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
