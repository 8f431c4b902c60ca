package database

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage matches every StorageError.
	ErrStorage = errors.New("storage failure")

	// ErrNoRowsAffected marks a write that was expected to change a row and
	// did not.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// StorageError reports a failed round-trip to the store. Op names the
// workflow step that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError wraps err unless it already is a StorageError.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err crossed the persistence boundary.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}
