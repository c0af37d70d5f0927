package store

import "errors"

var (
	// ErrNotFound reports a lookup or update against an id the
	// store does not hold.
	ErrNotFound = errors.New("record not found")

	// ErrMissingID reports an update without a record id.
	ErrMissingID = errors.New("update requires a record id")
)
