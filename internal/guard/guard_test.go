// ABOUTME: Tests for ownership checks

package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type thing struct{ owner int64 }

func (t thing) OwnerID() int64 { return t.owner }

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(7, thing{owner: 7}))
	assert.ErrorIs(t, Authorize(7, thing{owner: 8}), ErrForbidden)
	assert.ErrorIs(t, Authorize(7, nil), ErrForbidden)
}
