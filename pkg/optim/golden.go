package optim

import "math"

var invPhi = (math.Sqrt(5) - 1) / 2

// GoldenSection is a plain golden-section search. It is slower than Brent
// but makes no smoothness assumption beyond unimodality.
type GoldenSection struct {
	XTol    float64
	MaxEval int
}

// NewGoldenSection returns a golden-section maximizer with default tolerances.
func NewGoldenSection() *GoldenSection {
	return &GoldenSection{XTol: defaultXTol, MaxEval: defaultMaxEval}
}

// Maximize implements Maximizer.
func (gs *GoldenSection) Maximize(f func(float64) float64, lo, hi float64) (Result, error) {
	if err := checkBounds(lo, hi); err != nil {
		return Result{}, err
	}
	if lo == hi {
		return Result{X: lo, F: f(lo), Evals: 1, Converged: true}, nil
	}

	xtol := gs.XTol
	if xtol <= 0 {
		xtol = defaultXTol
	}
	maxEval := gs.MaxEval
	if maxEval <= 0 {
		maxEval = defaultMaxEval
	}

	a, b := lo, hi
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := f(x1), f(x2)
	evals := 2

	converged := true
	for b-a > sqrtEps*math.Abs(0.5*(a+b))+xtol {
		if evals >= maxEval {
			converged = false
			break
		}
		// Ties keep the left point so that the search is deterministic.
		if f1 >= f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
		evals++
	}

	if f1 >= f2 {
		return Result{X: x1, F: f1, Evals: evals, Converged: converged}, nil
	}
	return Result{X: x2, F: f2, Evals: evals, Converged: converged}, nil
}
