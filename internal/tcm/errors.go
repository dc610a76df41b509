package tcm

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input to a repository operation.
// Nothing is persisted when a ValidationError is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports that an operation targeted an entity that does not
// exist. Lookups never return it — they return (nil, nil) for absent
// entities — but mutations with a definite target do.
type NotFoundError struct {
	Kind string // "group", "case", "batch", "batch case"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// PersistenceError reports a failure in the underlying store. Read-side
// corruption degrades to an empty collection instead of surfacing one;
// write-side failures always surface so the caller can tell the user the
// save did not happen.
type PersistenceError struct {
	Key string // collection key
	Op  string // "read" or "write"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
