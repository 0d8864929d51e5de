package optim

import "errors"

var (
	// ErrBadBounds indicates a non-finite or inverted search interval.
	ErrBadBounds = errors.New("optim: bad bounds")

	// ErrUnknownKind indicates that New was asked for an unregistered optimizer.
	ErrUnknownKind = errors.New("optim: unknown maximizer")
)
