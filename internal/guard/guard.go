// ABOUTME: Per-user ownership checks for owned entities
// ABOUTME: Children are authorized through their loaded parent

package guard

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when an entity is owned by another user.
var ErrForbidden = errors.New("forbidden")

// Owned is implemented by every entity with a direct owner.
type Owned interface {
	OwnerID() int64
}

// Authorize returns nil if userID owns entity, otherwise ErrForbidden.
func Authorize(userID int64, entity Owned) error {
	if entity == nil || entity.OwnerID() != userID {
		return fmt.Errorf("%w: resource belongs to another user", ErrForbidden)
	}
	return nil
}
