// Package replica models one independent copy of a logical ledger: a named
// owner of a single append-only store, with lifecycle-gated operations and
// pairwise divergence comparison.
//
// A replica moves through three states: Uninitialized, Initialized, Closed.
// Closed is terminal for the instance. Every operation that touches the
// store fails with NotInitializedError unless the replica is Initialized,
// so a forgotten Initialize or a use-after-Close surfaces immediately
// instead of as a nil dereference.
//
// Root computation is always a full rehash of the store's current records.
// Callers rely on a freshly computed root reflecting the very latest state;
// do not cache it here.
package replica
