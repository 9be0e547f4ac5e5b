// Package types provides shared API types used by the server and the CLI
// client. Keeping them in one place ensures both sides agree on the wire
// contract.
package types

import "time"

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is a simple health check response.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int    `json:"uptime,omitempty"`
}

// ServerStatus represents detailed server status.
type ServerStatus struct {
	Status    string    `json:"status"`
	Port      int       `json:"port"`
	Uptime    int       `json:"uptime"`
	UserCount int       `json:"userCount"`
	Version   string    `json:"version,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// UserRequest is the body accepted when creating or replacing a user.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse is a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
}
