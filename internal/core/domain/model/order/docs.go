// Package order contains the production ledger aggregate.
//
// An Order owns Lines (one per product, with a required quantity) and,
// through them, Actions (recorded units of work: stage, quantity, actor,
// cost snapshot, timestamp). The aggregate enforces the quota invariant —
// per-stage recorded totals never exceed a line's required quantity — and
// derives the order status from completion after every mutation.
//
// The aggregate assumes serialized access per line; the persistence layer
// provides that serialization with row locks. Given it, the invariants hold
// under concurrent writers.
package order
