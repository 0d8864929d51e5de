package sweep

import "errors"

var (
	// ErrNoDensities indicates an empty density sequence.
	ErrNoDensities = errors.New("sweep: no densities")

	// ErrBadDensity indicates a non-positive, non-finite or unordered density input.
	ErrBadDensity = errors.New("sweep: bad density")
)
