// ABOUTME: Tests for error to status mapping

package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2389/pantry/internal/auth"
	"github.com/2389/pantry/internal/guard"
	"github.com/2389/pantry/internal/kitchen"
	"github.com/2389/pantry/internal/reconcile"
	"github.com/2389/pantry/internal/ref"
	"github.com/2389/pantry/internal/store"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantPublic bool
	}{
		{"field error", &reconcile.FieldError{Kind: "recipe", Unknown: []string{"x"}}, http.StatusBadRequest, true},
		{"not an object", fmt.Errorf("recipe data: %w", reconcile.ErrNotObject), http.StatusBadRequest, true},
		{"validation", fmt.Errorf("%w: bad", kitchen.ErrValidation), http.StatusBadRequest, true},
		{"invalid ref", fmt.Errorf("%w: %q", ref.ErrInvalidRef, "abc"), http.StatusBadRequest, true},
		{"bad json", errBadJSON, http.StatusBadRequest, true},
		{"username taken", auth.ErrUsernameTaken, http.StatusBadRequest, true},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, true},
		{"forbidden", fmt.Errorf("recipe: %w", guard.ErrForbidden), http.StatusForbidden, true},
		{"disabled", auth.ErrAccountDisabled, http.StatusForbidden, true},
		{"not found", fmt.Errorf("loading: %w", store.ErrNotFound), http.StatusNotFound, true},
		{"no current list", kitchen.ErrNoCurrentList, http.StatusNotFound, true},
		{"unknown child", reconcile.ErrUnknownChild, http.StatusNotFound, true},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, public := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantPublic, public)
		})
	}
}
