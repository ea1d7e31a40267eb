package port

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned by stores when an identifier is not
	// well-formed for the underlying storage, before any lookup happens.
	ErrInvalidID = errors.New("invalid id")
)
