package optim

import (
	"fmt"
	"math"
	"strings"
)

// Kind names a Maximizer implementation.
type Kind string

const (
	KindBrent  Kind = "brent"
	KindGolden Kind = "golden"
)

const (
	defaultXTol    = 1e-5
	defaultMaxEval = 500
)

// Result is the outcome of a bounded scalar maximization.
type Result struct {
	X         float64 // argmax, always within [lo, hi]
	F         float64 // f(X)
	Evals     int
	Converged bool
}

// Maximizer finds a local maximum of f on the closed interval [lo, hi]
// without derivatives.
type Maximizer interface {
	Maximize(f func(float64) float64, lo, hi float64) (Result, error)
}

// New returns the Maximizer registered under kind. An empty kind selects Brent.
func New(kind string) (Maximizer, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case "", KindBrent:
		return NewBrent(), nil
	case KindGolden:
		return NewGoldenSection(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func checkBounds(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("%w: [%g, %g] not finite", ErrBadBounds, lo, hi)
	}
	if lo > hi {
		return fmt.Errorf("%w: lo=%g > hi=%g", ErrBadBounds, lo, hi)
	}
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
