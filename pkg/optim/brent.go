package optim

import "math"

var (
	sqrtEps    = math.Sqrt(2.220446049250313e-16)
	goldenMean = 0.5 * (3 - math.Sqrt(5))
)

// Brent combines golden-section steps with parabolic interpolation
// (Brent's fminbound). It never evaluates f at the interval end points.
type Brent struct {
	XTol    float64 // absolute tolerance on the argmax
	MaxEval int     // evaluation budget
}

// NewBrent returns a Brent maximizer with default tolerances.
func NewBrent() *Brent {
	return &Brent{XTol: defaultXTol, MaxEval: defaultMaxEval}
}

// Maximize implements Maximizer.
func (b *Brent) Maximize(f func(float64) float64, lo, hi float64) (Result, error) {
	if err := checkBounds(lo, hi); err != nil {
		return Result{}, err
	}
	if lo == hi {
		return Result{X: lo, F: f(lo), Evals: 1, Converged: true}, nil
	}

	xtol := b.XTol
	if xtol <= 0 {
		xtol = defaultXTol
	}
	maxEval := b.MaxEval
	if maxEval <= 0 {
		maxEval = defaultMaxEval
	}

	// Minimize g = -f.
	g := func(x float64) float64 { return -f(x) }

	a, c := lo, hi
	fulc := a + goldenMean*(c-a)
	nfc, xf := fulc, fulc
	var rat, e float64

	fx := g(xf)
	evals := 1
	ffulc, fnfc := fx, fx

	xm := 0.5 * (a + c)
	tol1 := sqrtEps*math.Abs(xf) + xtol/3
	tol2 := 2 * tol1

	converged := true
	for math.Abs(xf-xm) > tol2-0.5*(c-a) {
		golden := true

		if math.Abs(e) > tol1 {
			golden = false
			r := (xf - nfc) * (fx - ffulc)
			q := (xf - fulc) * (fx - fnfc)
			p := (xf-fulc)*q - (xf-nfc)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = rat

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-xf) && p < q*(c-xf) {
				rat = p / q
				x := xf + rat
				if x-a < tol2 || c-x < tol2 {
					si := sign(xm - xf)
					rat = tol1 * si
				}
			} else {
				golden = true
			}
		}

		if golden {
			if xf >= xm {
				e = a - xf
			} else {
				e = c - xf
			}
			rat = goldenMean * e
		}

		x := clamp(xf+sign(rat)*math.Max(math.Abs(rat), tol1), lo, hi)
		fu := g(x)
		evals++

		if fu <= fx {
			if x >= xf {
				a = xf
			} else {
				c = xf
			}
			fulc, ffulc = nfc, fnfc
			nfc, fnfc = xf, fx
			xf, fx = x, fu
		} else {
			if x < xf {
				a = x
			} else {
				c = x
			}
			if fu <= fnfc || nfc == xf {
				fulc, ffulc = nfc, fnfc
				nfc, fnfc = x, fu
			} else if fu <= ffulc || fulc == xf || fulc == nfc {
				fulc, ffulc = x, fu
			}
		}

		xm = 0.5 * (a + c)
		tol1 = sqrtEps*math.Abs(xf) + xtol/3
		tol2 = 2 * tol1

		if evals >= maxEval {
			converged = false
			break
		}
	}

	return Result{X: xf, F: -fx, Evals: evals, Converged: converged}, nil
}
