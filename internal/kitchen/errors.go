// ABOUTME: Domain error sentinels for kitchen operations
// ABOUTME: Validation failures wrap ErrValidation with a client-facing detail

package kitchen

import (
	"errors"
	"fmt"

	"github.com/2389/pantry/internal/store"
)

// ErrValidation is returned for request payloads that are well-formed JSON but
// semantically invalid.
var ErrValidation = errors.New("validation failed")

// ErrNoCurrentList is returned when the user has no current shopping list.
// It matches store.ErrNotFound.
var ErrNoCurrentList = fmt.Errorf("no current shopping list: %w", store.ErrNotFound)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
