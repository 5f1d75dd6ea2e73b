// Package apperr holds the error kinds shared by every service. Handlers
// classify errors with errors.Is and map them to HTTP statuses; services wrap
// them with context via fmt.Errorf and %w.
package apperr

import "errors"

var (
	// ErrValidation indicates bad input shape or range.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates an unknown customer or transaction id.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyReversed indicates an attempt to mutate a reversed transaction.
	ErrAlreadyReversed = errors.New("transaction already reversed")
	// ErrConflict indicates an operation blocked by dependent state.
	ErrConflict = errors.New("conflict")
)
