// Package cli provides the command-line interface for userd.
//
// The cli package implements all userd commands:
//   - serve: Run the HTTP server in the foreground
//   - users list: List all user records
//   - users get: Show a single user by id
//   - users create: Create a user (flags or interactive prompts)
//   - users update: Replace a user's name and email
//   - users delete: Delete a user by id
//   - status: Report whether a server is running, with live details
//   - stop: Stop a running server via its PID file
//   - init: Write a starter configuration file
//   - version: Show userd version information
//
// The serve command writes a PID file (~/.userd/userd.pid by default) that
// status and stop use to find the process. Every other command talks to the
// server over its HTTP API; the target defaults to http://localhost:8080 and
// can be changed with --url or the USERD_URL environment variable.
//
// All commands that produce a result accept --json, which switches stdout
// to a single JSON document for scripting.
//
// Usage:
//
//	userd serve --port 8080 --seed "Alice=alice@example.com"
//	userd users create --name Bob --email bob@example.com
//	userd users list --json
//	userd status
//	userd stop
package cli
