package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/httputil"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/metrics"
)

// userNotFoundMessage is the exact plain-text body returned for any request
// addressing a user id that does not exist.
const userNotFoundMessage = "User not found"

// handleListUsers handles GET /users. The listing is always a JSON array,
// in insertion order, and an empty store yields [] rather than null.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, s.store.List())
}

// handleCreateUser handles POST /users.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	user := s.store.Create(req.Name, req.Email)
	s.syncUserCount()
	s.log.Debug("user created", "id", user.ID)
	httputil.WriteCreated(w, user)
}

// handleGetUser handles GET /users/{id}.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userID(w, r)
	if !ok {
		return
	}

	user, err := s.store.Get(id)
	if err != nil {
		s.writeUserNotFound(w)
		return
	}
	httputil.WriteOK(w, user)
}

// handleUpdateUser handles PUT /users/{id}.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	user, err := s.store.Update(id, req.Name, req.Email)
	if err != nil {
		s.writeUserNotFound(w)
		return
	}
	httputil.WriteOK(w, user)
}

// handleDeleteUser handles DELETE /users/{id}.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(id); err != nil {
		s.writeUserNotFound(w)
		return
	}
	s.syncUserCount()
	s.log.Debug("user deleted", "id", id)
	httputil.WriteNoContent(w)
}

// userID extracts the {id} path segment. A non-numeric id cannot name any
// stored user, so it is reported the same way as a missing one.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeUserNotFound(w)
		return 0, false
	}
	return id, true
}

// writeUserNotFound writes the plain-text 404 the user endpoints return.
func (s *Server) writeUserNotFound(w http.ResponseWriter) {
	recordError("not_found")
	httputil.WriteText(w, http.StatusNotFound, userNotFoundMessage)
}

// writeBadRequest writes a plain-text 400 for unreadable request bodies.
func (s *Server) writeBadRequest(w http.ResponseWriter, message string) {
	recordError("bad_request")
	httputil.WriteText(w, http.StatusBadRequest, message)
}

// recordError counts an error response by kind.
func recordError(kind string) {
	if metrics.ErrorsTotal != nil {
		if vec, err := metrics.ErrorsTotal.WithLabels(kind); err == nil {
			_ = vec.Inc()
		}
	}
}
