package services

import "errors"

var (
	// ErrNotFound covers both "absent" and "exists but not yours" so callers
	// cannot probe for other users' rows.
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)
