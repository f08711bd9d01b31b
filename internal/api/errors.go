// ABOUTME: Maps domain errors to HTTP statuses and writes JSON error bodies
// ABOUTME: Internal errors are logged and reported without detail

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/2389/pantry/internal/auth"
	"github.com/2389/pantry/internal/guard"
	"github.com/2389/pantry/internal/kitchen"
	"github.com/2389/pantry/internal/reconcile"
	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

// errBadJSON marks request bodies that are not valid JSON.
var errBadJSON = errors.New("invalid JSON body")

// sendJSONError writes a JSON error response.
func sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// statusFor returns the HTTP status for err and whether its message may be
// shown to the client.
func statusFor(err error) (int, bool) {
	var fieldErr *reconcile.FieldError
	switch {
	case errors.As(err, &fieldErr),
		errors.Is(err, reconcile.ErrNotObject),
		errors.Is(err, kitchen.ErrValidation),
		errors.Is(err, ref.ErrInvalidRef),
		errors.Is(err, errBadJSON),
		errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrUsernameTaken):
		return http.StatusBadRequest, true
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, guard.ErrForbidden), errors.Is(err, auth.ErrAccountDisabled):
		return http.StatusForbidden, true
	case errors.Is(err, store.ErrNotFound), errors.Is(err, reconcile.ErrUnknownChild):
		return http.StatusNotFound, true
	default:
		return http.StatusInternalServerError, false
	}
}

// writeError maps err to a status and writes it.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, public := statusFor(err)
	if !public {
		s.logger.Error("request failed",
			"error", err,
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
		sendJSONError(w, status, "internal server error")
		return
	}
	sendJSONError(w, status, err.Error())
}

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// decodeBody decodes the single JSON value of the request body into v.
// Payload types check their own field sets.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
			return errBadJSON
		case errors.As(err, &typeErr), errors.As(err, &maxErr):
			return fmt.Errorf("%w: %v", errBadJSON, err)
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after the JSON value", errBadJSON)
	}
	return nil
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
