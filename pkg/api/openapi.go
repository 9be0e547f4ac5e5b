package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/httputil"
)

// openapiSpec is the canonical description of this API, embedded at build
// time and served at /openapi.json.
//
//go:embed openapi.yaml
var openapiSpec []byte

// renderOpenAPIJSON parses and validates the embedded document, then
// renders it as JSON. Validating at startup catches a broken document
// before any client sees it.
func renderOpenAPIJSON() ([]byte, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI spec: %w", err)
	}
	return data, nil
}

// handleGetOpenAPISpec handles GET /openapi.json.
// Returns an OpenAPI 3.0 specification of the user API. This allows
// importing the endpoints into tools like Insomnia, Postman, or Swagger UI.
func (s *Server) handleGetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if len(s.openapiJSON) == 0 {
		httputil.WriteInternalError(w, "openapi_unavailable", "OpenAPI document failed to load")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openapiJSON)
}
