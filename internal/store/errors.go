package store

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable marks failures of the storage engine itself
// (connection loss, I/O errors). Callers match it with errors.Is and turn it
// into a retry suggestion; a missing row is never reported this way.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ValidationError reports a field value that violates the schema constraints
// (bad enumerated value, non-positive bedroom count, incomplete car details).
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s", e.Value, e.Field)
}
