package store

import "fmt"

// StorageError reports a failure of the underlying database. Callers use
// errors.As to tell it apart from validation errors.
type StorageError struct {
	Op  string // operation that failed, e.g. "record"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
