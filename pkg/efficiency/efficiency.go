package efficiency

import "math"

// Infeasible is returned by EnergyEfficiency when no valid operating regime exists.
const Infeasible = -1e15

// edgeShrink pulls the beta = 1 edge of the SNR range inwards so that
// rounding cannot push the pilot reuse factor below one.
const edgeShrink = 1e-9

// Model evaluates energy efficiency for a fixed set of system parameters.
// It is immutable and safe for concurrent use.
type Model struct {
	cfg Config

	s      float64 // 2/(alpha-2)
	q      float64 // 1/(alpha-1)
	c      float64 // (1-eps^2)^2
	kappa  float64 // 1-c
	gamma  float64 // 2^rate - 1
	log2g  float64 // log2(1+gamma)
	ptxCst float64 // PropLossNoise * Gamma(alpha/2+1) / eta
}

// New creates a model with the given config.
// Fields > 0 in cfg override defaults.
// Notes:
//   - Epsilon in [0..1) is accepted verbatim (0 means ideal hardware).
//   - C0/C1/D0/D1/A: zero is an intentional "disable"; negative means unset.
//   - Alpha must exceed 2 to override the default.
func New(cfg *Config) Model {
	base := _defaultConfig()
	if cfg == nil {
		return newModel(*base)
	}

	merged := *base

	if cfg.Alpha > 2 {
		merged.Alpha = cfg.Alpha
	}
	if cfg.PropLossNoise > 0 {
		merged.PropLossNoise = cfg.PropLossNoise
	}
	if cfg.Tau > 0 {
		merged.Tau = cfg.Tau
	}
	if cfg.Eta > 0 && cfg.Eta <= 1 {
		merged.Eta = cfg.Eta
	}
	if cfg.Epsilon >= 0 && cfg.Epsilon < 1 {
		merged.Epsilon = cfg.Epsilon
	}
	if cfg.SymbolTime > 0 {
		merged.SymbolTime = cfg.SymbolTime
	}
	if cfg.TargetRate > 0 {
		merged.TargetRate = cfg.TargetRate
	}

	// Energy coefficients: allow zero, default only if negative.
	if cfg.C0 >= 0 {
		merged.C0 = cfg.C0
	}
	if cfg.C1 >= 0 {
		merged.C1 = cfg.C1
	}
	if cfg.D0 >= 0 {
		merged.D0 = cfg.D0
	}
	if cfg.D1 >= 0 {
		merged.D1 = cfg.D1
	}
	if cfg.A >= 0 {
		merged.A = cfg.A
	}

	return newModel(merged)
}

func newModel(cfg Config) Model {
	c := (1 - cfg.Epsilon*cfg.Epsilon) * (1 - cfg.Epsilon*cfg.Epsilon)
	gamma := math.Exp2(cfg.TargetRate) - 1
	return Model{
		cfg:    cfg,
		s:      2 / (cfg.Alpha - 2),
		q:      1 / (cfg.Alpha - 1),
		c:      c,
		kappa:  1 - c,
		gamma:  gamma,
		log2g:  math.Log2(1 + gamma),
		ptxCst: cfg.PropLossNoise * math.Gamma(cfg.Alpha/2+1) / cfg.Eta,
	}
}

// Config returns the merged parameters the model was built with.
func (m Model) Config() Config { return m.cfg }

// Gamma returns the SINR target 2^TargetRate - 1.
func (m Model) Gamma() float64 { return m.gamma }

// Aggregates computes B1 and B2 at the given SNR.
func (m Model) Aggregates(snr float64, M, K int) Aggregates {
	zeta := 1 / snr
	k := float64(K)
	return Aggregates{
		B1: k*(m.s*m.s+m.q) + m.s*(k+zeta),
		B2: (k+zeta)*(1+zeta) + m.kappa*float64(M),
	}
}

// EvaluateFeasibility computes the pilot reuse factor beta at snr.
// The denominator sign is checked before dividing; a non-positive
// denominator is reported as infeasible with beta = 0.
func (m Model) EvaluateFeasibility(snr float64, op OperatingPoint) (beta float64, feasible bool) {
	if !(snr > 0) || math.IsInf(snr, 0) || op.M < 1 || op.K < 1 {
		return 0, false
	}
	agg := m.Aggregates(snr, op.M, op.K)
	den := float64(op.M)*m.c - agg.B2*m.gamma
	if den <= 0 {
		return 0, false
	}
	beta = agg.B1 * m.gamma / den
	return beta, beta >= 1
}

// EnergyEfficiency returns the EE in bit/J at snr, or Infeasible.
func (m Model) EnergyEfficiency(snr float64, op OperatingPoint) float64 {
	p, ok := m.Power(snr, op)
	if !ok {
		return Infeasible
	}
	ee := p.EE()
	if math.IsNaN(ee) || math.IsInf(ee, 0) || ee <= 0 {
		return Infeasible
	}
	return ee
}

// Power returns the per-cell rate and power split at snr. ok is false when
// the point is infeasible or the pre-log factor is not positive.
func (m Model) Power(snr float64, op OperatingPoint) (p Power, ok bool) {
	if !(op.Density > 0) {
		return Power{}, false
	}
	beta, feasible := m.EvaluateFeasibility(snr, op)
	if !feasible {
		return Power{}, false
	}

	k := float64(op.K)
	M := float64(op.M)

	prelog := 1 - beta*k/m.cfg.Tau
	if prelog <= 0 {
		return Power{}, false
	}
	p.Rate = k * prelog * m.log2g / m.cfg.SymbolTime

	lambda := op.BSDensity()
	p.Transmit = k * snr * m.ptxCst / math.Pow(math.Pi*lambda, m.cfg.Alpha/2)
	p.Static = m.cfg.C0
	p.Users = m.cfg.C1 * k
	p.Antennas = m.cfg.D0 * M
	p.Processing = m.cfg.D1 * M * k / m.cfg.SymbolTime
	p.Coding = m.cfg.A * p.Rate
	return p, true
}

// Objective returns EnergyEfficiency as a function of the SNR alone.
func (m Model) Objective(op OperatingPoint) func(float64) float64 {
	return func(snr float64) float64 {
		return m.EnergyEfficiency(snr, op)
	}
}

// FeasibleSNRRange returns the SNR interval (lo, hi] on which 1 <= beta < Tau/K.
// ok is false when no SNR satisfies both bounds. hi is +Inf when beta stays
// at or above one for every SNR.
func (m Model) FeasibleSNRRange(op OperatingPoint) (lo, hi float64, ok bool) {
	if op.M < 1 || op.K < 1 {
		return 0, 0, false
	}
	zetaLo, found := m.zetaForBeta(m.cfg.Tau/float64(op.K), op)
	if !found {
		return 0, 0, false
	}
	lo = 1 / zetaLo

	zetaHi, found := m.zetaForBeta(1, op)
	if !found {
		return lo, math.Inf(1), true
	}
	hi = (1 / zetaHi) * (1 - edgeShrink)
	if hi <= lo {
		return 0, 0, false
	}
	return lo, hi, true
}

// zetaForBeta solves beta(zeta) = t for zeta = 1/snr > 0. Beta is strictly
// increasing in zeta, so there is at most one positive root.
func (m Model) zetaForBeta(t float64, op OperatingPoint) (float64, bool) {
	k := float64(op.K)
	M := float64(op.M)

	a := t
	b := t*(k+1) + m.s
	c := k*(m.s*m.s+m.q+m.s) + t*(k+m.kappa*M) - t*M*m.c/m.gamma
	if c >= 0 {
		return 0, false
	}
	// c < 0 gives one positive root; use the form without cancellation.
	disc := b*b - 4*a*c
	return -2 * c / (b + math.Sqrt(disc)), true
}
