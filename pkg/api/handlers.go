package api

import (
	"net/http"

	types "github.com/ABHINAV2087/REST-API-Learning/pkg/api/types"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/httputil"
)

// Type aliases pointing to the canonical shared types.
type (
	ErrorResponse  = types.ErrorResponse
	HealthResponse = types.HealthResponse
	ServerStatus   = types.ServerStatus
	UserRequest    = types.UserRequest
)

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, HealthResponse{
		Status: "ok",
		Uptime: s.Uptime(),
	})
}

// handleGetStatus handles GET /status and returns detailed server status.
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	version := s.version
	if version == "" {
		version = "dev"
	}

	httputil.WriteOK(w, ServerStatus{
		Status:    "running",
		Port:      s.port,
		Uptime:    s.Uptime(),
		UserCount: s.store.Count(),
		Version:   version,
		StartedAt: s.startTime,
	})
}
