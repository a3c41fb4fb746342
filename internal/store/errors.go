package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by lookups of unknown records.
var ErrNotFound = errors.New("not found")

// StorageError represents a store file that could not be written.
type StorageError struct {
	Op    string
	Path  string
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("storage error: %s %s", e.Op, e.Path)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
