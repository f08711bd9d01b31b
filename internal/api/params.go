// ABOUTME: Path parameter helpers shared by the kitchen handlers

package api

import (
	"fmt"
	"net/http"

	"github.com/2389/pantry/internal/auth"
	"github.com/2389/pantry/internal/ref"
)

// currentUser returns the id of the authenticated user.
func currentUser(r *http.Request) int64 {
	return auth.MustFromContext(r.Context()).UserID
}

// pathRef parses a path parameter that may be the sentinel.
func pathRef(r *http.Request, name string) (ref.Ref, error) {
	return ref.Parse(r.PathValue(name))
}

// pathID parses a path parameter that must name a persisted entity.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	parsed, err := ref.Parse(raw)
	if err != nil {
		return 0, err
	}
	id, ok := parsed.Existing()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ref.ErrInvalidRef, raw)
	}
	return id, nil
}
