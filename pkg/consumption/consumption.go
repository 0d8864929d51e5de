package consumption

import "github.com/Drsuh/maximal-EE/pkg/util"

// Accumulator keeps running sums of area figures over a sweep.
type Accumulator struct {
	count     int
	sumPower  float64
	sumRate   float64
	sumShare  float64
	sumBS     float64
	peakPower float64
}

// New returns an empty Accumulator.
func New() *Accumulator { return &Accumulator{} }

// Apply adds one feasible point. Points without power (infeasible) are
// ignored and reported as false.
func (a *Accumulator) Apply(ar Area) bool {
	if !(ar.Power > 0) {
		return false
	}
	a.count++
	a.sumPower += ar.Power
	a.sumRate += ar.Rate
	a.sumShare += util.Clamp01(ar.TransmitShare)
	a.sumBS += ar.BSDensity
	if ar.Power > a.peakPower {
		a.peakPower = ar.Power
	}
	return true
}

// Count returns the number of applied points.
func (a *Accumulator) Count() int { return a.count }

// PeakPower returns the largest area power seen, in W/km².
func (a *Accumulator) PeakPower() float64 { return a.peakPower }

// Averages returns mean area figures over all applied points.
func (a *Accumulator) Averages() Area {
	if a.count == 0 {
		return Area{}
	}
	n := float64(a.count)
	return Area{
		BSDensity:     a.sumBS / n,
		Power:         a.sumPower / n,
		Rate:          a.sumRate / n,
		TransmitShare: a.sumShare / n,
	}
}
