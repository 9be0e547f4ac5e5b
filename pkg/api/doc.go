// Package api provides the userd HTTP server: an in-memory user CRUD API
// with health, status, metrics, and OpenAPI endpoints.
//
// Endpoints:
//
//	POST   /users         - Create a user
//	GET    /users         - List all users in insertion order
//	GET    /users/{id}    - Get a user by id
//	PUT    /users/{id}    - Replace a user's name and email
//	DELETE /users/{id}    - Delete a user
//	GET    /health        - Server health check
//	GET    /status        - Detailed server status
//	GET    /metrics       - Prometheus metrics
//	GET    /openapi.json  - OpenAPI 3.0 description of the API
//
// Usage:
//
//	cfg := config.Default()
//	srv := api.New(cfg, api.WithVersion("1.2.0"))
//	srv.SetLogger(log)
//	if err := srv.Start(); err != nil {
//		return err
//	}
//	defer srv.Stop()
//
// Example curl commands:
//
//	# Create a user
//	curl -X POST http://localhost:8080/users \
//	  -H "Content-Type: application/json" \
//	  -d '{"name": "Alice", "email": "alice@example.com"}'
//
//	# List users
//	curl http://localhost:8080/users
//
//	# Delete a user
//	curl -X DELETE http://localhost:8080/users/1
package api
