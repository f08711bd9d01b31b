// ABOUTME: Account endpoints: login, signup, logout, closeup
// ABOUTME: Login answers with a bare JSON string, as clients expect

package api

import (
	"errors"
	"net/http"

	"github.com/2389/pantry/internal/auth"
)

// Messages returned by the login endpoint.
const (
	msgInvalidLogin    = "Invalid login combination"
	msgAccountDisabled = "Account has been disabled"
	msgLoggedOut       = "User logged out"
	msgAccountClosed   = "Account closed"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.gate.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeJSON(w, http.StatusUnauthorized, msgInvalidLogin)
	case errors.Is(err, auth.ErrAccountDisabled):
		s.writeJSON(w, http.StatusForbidden, msgAccountDisabled)
	case err != nil:
		s.writeError(w, r, err)
	default:
		s.writeJSON(w, http.StatusOK, token)
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !s.config.Auth.SignupAllowed() {
		sendJSONError(w, http.StatusForbidden, "signup is disabled")
		return
	}

	var req auth.SignupRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.gate.Signup(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, signupResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.Logout(r.Context(), currentUser(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, msgLoggedOut)
}

func (s *Server) handleCloseup(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.Closeup(r.Context(), currentUser(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, msgAccountClosed)
}

// handleNotImplemented answers the password reset endpoints.
// TODO: send reset links once an outbound mail transport is configured.
func (s *Server) handleNotImplemented(w http.ResponseWriter, r *http.Request) {
	sendJSONError(w, http.StatusNotImplemented, "not implemented")
}
