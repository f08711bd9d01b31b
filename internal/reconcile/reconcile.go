// ABOUTME: Diff-based synchronization of child collections (delete/update/create)
// ABOUTME: Produces a deterministic plan and applies it through caller callbacks

package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/pantry/internal/ref"
)

// ErrUnknownChild is returned when a submitted DTO references a persisted id
// that is not a child of the parent being reconciled.
var ErrUnknownChild = errors.New("unknown child")

// Upsert is one submitted DTO with the persisted child it updates.
// Existing is nil when the DTO creates a new child.
type Upsert[C, D any] struct {
	Existing *C
	Input    D
}

// Plan is the result of Diff.
type Plan[C, D any] struct {
	Delete  []C
	Upserts []Upsert[C, D]
}

// Diff matches submitted DTOs against persisted children by id.
// Duplicate ids in submitted are kept; applying them in order makes the last one win.
func Diff[C, D any](existing []C, submitted []D, childID func(C) int64, inputRef func(D) ref.Ref) (Plan[C, D], error) {
	byID := make(map[int64]int, len(existing))
	for i, c := range existing {
		byID[childID(c)] = i
	}

	keep := make(map[int64]struct{}, len(submitted))
	plan := Plan[C, D]{Upserts: make([]Upsert[C, D], 0, len(submitted))}
	for _, in := range submitted {
		id, ok := inputRef(in).Existing()
		if !ok {
			plan.Upserts = append(plan.Upserts, Upsert[C, D]{Input: in})
			continue
		}
		idx, found := byID[id]
		if !found {
			return Plan[C, D]{}, fmt.Errorf("%w: %d", ErrUnknownChild, id)
		}
		keep[id] = struct{}{}
		plan.Upserts = append(plan.Upserts, Upsert[C, D]{Existing: &existing[idx], Input: in})
	}

	for _, c := range existing {
		if _, ok := keep[childID(c)]; !ok {
			plan.Delete = append(plan.Delete, c)
		}
	}
	return plan, nil
}

// Ops are the store mutations used by Apply.
type Ops[C, D any] struct {
	Delete func(ctx context.Context, child C) error
	Update func(ctx context.Context, child C, in D) error
	Create func(ctx context.Context, in D) error
}

// Apply executes the plan: deletes first, then upserts in submission order.
func Apply[C, D any](ctx context.Context, plan Plan[C, D], ops Ops[C, D]) error {
	for _, c := range plan.Delete {
		if err := ops.Delete(ctx, c); err != nil {
			return err
		}
	}
	for _, u := range plan.Upserts {
		var err error
		if u.Existing == nil {
			err = ops.Create(ctx, u.Input)
		} else {
			err = ops.Update(ctx, *u.Existing, u.Input)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Symmetric returns the keys to add (in target order, deduplicated) and the
// keys to remove (in current order) to turn current into target.
func Symmetric[K comparable](current, target []K) (add, remove []K) {
	have := make(map[K]struct{}, len(current))
	for _, k := range current {
		have[k] = struct{}{}
	}
	want := make(map[K]struct{}, len(target))
	for _, k := range target {
		if _, dup := want[k]; dup {
			continue
		}
		want[k] = struct{}{}
		if _, ok := have[k]; !ok {
			add = append(add, k)
		}
	}
	for _, k := range current {
		if _, ok := want[k]; !ok {
			remove = append(remove, k)
		}
	}
	return add, remove
}
