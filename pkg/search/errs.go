package search

import "errors"

var (
	// ErrBadGrid indicates a grid bound below one (MMax or KMax).
	ErrBadGrid = errors.New("search: grid bounds must be >= 1")

	// ErrBadUpper indicates a non-positive SNR search bound.
	ErrBadUpper = errors.New("search: snr upper bound must be > 0")

	// ErrBadReference indicates a reference configuration with M or K below one.
	ErrBadReference = errors.New("search: reference configuration must have M, K >= 1")

	// ErrBadDensity indicates a non-positive or non-finite user density.
	ErrBadDensity = errors.New("search: density must be a positive finite number")
)
