package replica

import (
	"errors"
	"fmt"
)

// NotInitializedError is returned when a lifecycle-gated operation is
// invoked while the replica is Uninitialized or Closed.
//
// It is a local, recoverable condition: the caller can Initialize an
// Uninitialized replica and retry, or recreate a Closed one.
type NotInitializedError struct {
	// Replica is the name of the replica the operation was invoked on.
	Replica string

	// State is the lifecycle state at the time of the call.
	State State
}

// Error implements the error interface.
func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("replica %q is not initialized (state: %s)", e.Replica, e.State)
}

// IsNotInitialized reports whether the error is a NotInitializedError.
// Uses errors.As to handle wrapped errors.
func IsNotInitialized(err error) bool {
	var ne *NotInitializedError
	return errors.As(err, &ne)
}
