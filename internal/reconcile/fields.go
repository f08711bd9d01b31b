// ABOUTME: Allow-list validation of JSON object keys for submitted DTOs
// ABOUTME: Rejects unknown fields before any decoding into typed structs

package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotObject is returned when a payload that must be a JSON object is not.
var ErrNotObject = errors.New("not a JSON object")

// FieldError reports keys that are not part of a DTO's allow-list.
type FieldError struct {
	Kind    string
	Unknown []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown %s data: unexpected field(s) %s", e.Kind, strings.Join(e.Unknown, ", "))
}

// Fields is the allow-list of keys for one DTO kind.
type Fields struct {
	kind    string
	allowed map[string]struct{}
}

// NewFields builds an allow-list named kind (used in error messages).
func NewFields(kind string, names ...string) Fields {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[n] = struct{}{}
	}
	return Fields{kind: kind, allowed: allowed}
}

// Check returns a *FieldError if any key is outside the allow-list.
func (f Fields) Check(keys []string) error {
	var unknown []string
	for _, k := range keys {
		if _, ok := f.allowed[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &FieldError{Kind: f.kind, Unknown: unknown}
}

// CheckObject validates the keys of a raw JSON object. Non-object input is
// reported as a decoding error.
func (f Fields) CheckObject(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%s data: %w", f.kind, ErrNotObject)
	}
	if obj == nil {
		return fmt.Errorf("%s data: %w", f.kind, ErrNotObject)
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	return f.Check(keys)
}
