// ABOUTME: Entity reference that is either a persisted id or the "new" sentinel
// ABOUTME: Parses the underscore-prefixed wire ids used by clients for unsaved entities

package ref

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel is the prefix clients use for ids of entities that do not exist yet.
// On path parameters of singleton resources it also selects the "current" entity.
const Sentinel = "_"

// ErrInvalidRef is returned when an identifier is neither the sentinel nor a positive integer.
var ErrInvalidRef = errors.New("invalid identifier")

// Ref identifies an entity in a request. The zero value is the sentinel.
type Ref struct {
	id       int64
	existing bool
}

// New returns the sentinel reference.
func New() Ref {
	return Ref{}
}

// ID returns a reference to a persisted entity.
func ID(id int64) Ref {
	return Ref{id: id, existing: true}
}

// IsNew reports whether r is the sentinel.
func (r Ref) IsNew() bool {
	return !r.existing
}

// Existing returns the persisted id and true, or 0 and false for the sentinel.
func (r Ref) Existing() (int64, bool) {
	return r.id, r.existing
}

// String renders r the way clients send it.
func (r Ref) String() string {
	if !r.existing {
		return Sentinel
	}
	return strconv.FormatInt(r.id, 10)
}

// Parse interprets a path or body identifier. Anything starting with "_" is the
// sentinel; otherwise the value must be a positive base-10 integer.
func Parse(s string) (Ref, error) {
	if strings.HasPrefix(s, Sentinel) {
		return New(), nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, s)
	}
	return ID(id), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, or a sentinel string.
// null decodes to the sentinel.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = New()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRef, data)
	}
	parsed, err := Parse(n.String())
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON writes persisted ids as numbers and the sentinel as "_".
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.existing {
		return []byte(`"` + Sentinel + `"`), nil
	}
	return []byte(strconv.FormatInt(r.id, 10)), nil
}
