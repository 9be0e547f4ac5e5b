// Option functions for configuring the server.

package api

import (
	"github.com/ABHINAV2087/REST-API-Learning/pkg/config"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// Option configures a Server.
type Option func(*Server)

// WithStore sets the user store backing the API. If not set, an empty
// store is created.
func WithStore(store *userstore.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithVersion sets the version string returned by the status endpoint.
// If not set, defaults to "dev".
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithCORS sets the CORS policy for the server, overriding whatever the
// config carries. If neither is set, a default localhost-only policy is
// used.
func WithCORS(cors *config.CORSConfig) Option {
	return func(s *Server) {
		s.corsConfig = cors
	}
}
