package replica

import (
	"context"
	"fmt"

	"github.com/roach88/replicaudit/internal/fingerprint"
	"github.com/roach88/replicaudit/internal/ledger"
)

// State is a replica's lifecycle state.
type State int

const (
	// StateUninitialized means the replica has been constructed but its
	// store is not open yet.
	StateUninitialized State = iota

	// StateInitialized means the store is open and all operations are
	// available.
	StateInitialized

	// StateClosed means the store has been released. Terminal: a closed
	// replica never transitions back to Initialized.
	StateClosed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Replica owns one ledger store exclusively. No two replicas share a store.
//
// Replica methods are not safe for concurrent use; callers that share an
// instance across goroutines must provide their own synchronization.
type Replica struct {
	name   string
	dbPath string
	store  *ledger.Store
	state  State
}

// New constructs a replica in the Uninitialized state.
// The store is not touched until Initialize.
func New(name, dbPath string) *Replica {
	return &Replica{
		name:   name,
		dbPath: dbPath,
		state:  StateUninitialized,
	}
}

// Name returns the replica's identifier.
func (r *Replica) Name() string {
	return r.name
}

// DBPath returns the path of the replica's backing database.
func (r *Replica) DBPath() string {
	return r.dbPath
}

// State returns the current lifecycle state.
func (r *Replica) State() State {
	return r.state
}

// Initialize opens the replica's store. Calling it again while already
// Initialized is a no-op. A Closed replica cannot be re-initialized; the
// call fails with NotInitializedError.
func (r *Replica) Initialize(ctx context.Context) error {
	switch r.state {
	case StateInitialized:
		return nil
	case StateClosed:
		return &NotInitializedError{Replica: r.name, State: r.state}
	}

	store, err := ledger.Open(r.dbPath)
	if err != nil {
		return fmt.Errorf("initialize replica %q: %w", r.name, err)
	}

	r.store = store
	r.state = StateInitialized
	return nil
}

// Close releases the store handle and transitions to Closed.
// Idempotent; closing an Uninitialized replica also lands in Closed.
func (r *Replica) Close() error {
	if r.state == StateClosed {
		return nil
	}

	r.state = StateClosed
	if r.store == nil {
		return nil
	}

	store := r.store
	r.store = nil
	if err := store.Close(); err != nil {
		return fmt.Errorf("close replica %q: %w", r.name, err)
	}
	return nil
}

// With runs fn against an initialized replica and guarantees Close on every
// exit path. fn's error is returned as-is; a Close failure is reported only
// when fn itself succeeded.
func (r *Replica) With(ctx context.Context, fn func(*Replica) error) (err error) {
	if err := r.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(r)
}

// gate returns the store if the replica is Initialized, or the lifecycle
// error otherwise. Every store-touching operation goes through it.
func (r *Replica) gate() (*ledger.Store, error) {
	if r.state != StateInitialized {
		return nil, &NotInitializedError{Replica: r.name, State: r.state}
	}
	return r.store, nil
}

// AddEvent appends an event payload to the replica's ledger and returns the
// assigned sequence number.
func (r *Replica) AddEvent(ctx context.Context, payload string) (int64, error) {
	store, err := r.gate()
	if err != nil {
		return 0, err
	}

	seq, err := store.Append(ctx, payload)
	if err != nil {
		return 0, fmt.Errorf("replica %q: %w", r.name, err)
	}
	return seq, nil
}

// Root computes the replica's current ledger fingerprint. The full record
// set is rehashed on every call.
func (r *Replica) Root(ctx context.Context) (string, error) {
	store, err := r.gate()
	if err != nil {
		return "", err
	}

	records, err := store.ListOrdered(ctx)
	if err != nil {
		return "", fmt.Errorf("replica %q: %w", r.name, err)
	}
	return fingerprint.ComputeRoot(records), nil
}

// RecordCount returns the number of records in the replica's ledger.
func (r *Replica) RecordCount(ctx context.Context) (int, error) {
	store, err := r.gate()
	if err != nil {
		return 0, err
	}

	count, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("replica %q: %w", r.name, err)
	}
	return count, nil
}

// Records returns the replica's full record set in sequence order.
func (r *Replica) Records(ctx context.Context) ([]ledger.Record, error) {
	store, err := r.gate()
	if err != nil {
		return nil, err
	}

	records, err := store.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("replica %q: %w", r.name, err)
	}
	return records, nil
}
