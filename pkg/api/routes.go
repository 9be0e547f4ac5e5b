// Route registration for the user API.

package api

import (
	"net/http"
)

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health check, status, and metrics
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleGetStatus)
	mux.Handle("GET /metrics", s.metricsHandler())

	// User management
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PUT /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	// OpenAPI description (for importing into Insomnia, Postman, Swagger UI)
	mux.HandleFunc("GET /openapi.json", s.handleGetOpenAPISpec)
}
