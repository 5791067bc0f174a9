package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when required input is missing.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a username is already registered.
	ErrConflict = errors.New("conflict")
	// ErrAuth is returned when credentials do not match a user.
	ErrAuth = errors.New("invalid credentials")
	// ErrNotFound is returned when a listing that must not be empty is.
	ErrNotFound = errors.New("not found")
)

// StoreError wraps any failure of the underlying persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err came from the persistence layer.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
