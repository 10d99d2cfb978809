// Package apperr holds the sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrResourceUnavailable means a deferred fragment could not be read or decoded.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrOutOfRange means a flat index position outside [0, count).
	ErrOutOfRange = errors.New("out of range")

	// ErrInconsistent means the tree and the flat index disagree.
	ErrInconsistent = errors.New("inconsistent navigation index")
)
