// Package reconcile synchronizes a parent's child collection with the complete
// child set submitted by a client.
//
// # Semantics
//
// Updates are full replacements. Given the persisted children and the submitted
// DTOs, Diff partitions the work into:
//
//   - Delete: persisted children whose id is not referenced by any submitted DTO
//   - Upserts: one step per submitted DTO, in submission order; the step carries
//     the matching persisted child for existing refs and nil for new refs
//
// Apply runs the deletes first and then the upserts, stopping at the first
// error. Callers run Apply inside a single store transaction so that a failure
// leaves nothing committed.
//
// # Field validation
//
// Fields.Check rejects DTOs that carry keys outside the allow-list of their
// type. DTO types call it from UnmarshalJSON so that a single bad child fails
// decoding of the whole request before any store access.
//
// # Association sets
//
// Symmetric computes the add/remove sets for pure associations keyed by a
// comparable value (for example ingredient locations keyed by location id).
package reconcile
