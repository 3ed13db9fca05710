// Package authz decides whether an action is permitted and who may act
// next on a governed record. It combines four layers: the role
// resolution chain (system admin, org admin, project assignment,
// viewer fallback, with impersonation substituting only the effective
// role), a static capability matrix, object-state-aware guards per
// approvable entity, and the per-project workflow settings resolver
// that routes approvals by side of house.
//
// Every exported predicate is a pure function of its explicit inputs.
// The package performs no I/O, holds no mutable state beyond the
// load-once matrix, and is safe to call from any number of goroutines.
// Wherever a determination cannot be made - missing context, unknown
// keys, unrecognized statuses - predicates fail closed: viewer, false,
// or the both-sides authority default.
package authz
