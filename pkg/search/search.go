package search

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Drsuh/maximal-EE/pkg/efficiency"
	"github.com/Drsuh/maximal-EE/pkg/optim"
)

// DefaultUpper is the SNR search bound; 1/DefaultUpper is negligible in B1 and B2.
const DefaultUpper = 1e6

// Reference is a fixed (M, K) baseline reported next to the optimum.
type Reference struct {
	Name string `yaml:"name"`
	M    int    `yaml:"m"`
	K    int    `yaml:"k"`
}

var (
	DefaultMISO = Reference{Name: "MISO", M: 10, K: 1}
	DefaultMIMO = Reference{Name: "MIMO", M: 91, K: 10}
)

// Options configures a Searcher. Zero values select defaults, except for
// MMax and KMax which are required.
type Options struct {
	MMax      int
	KMax      int
	Upper     float64
	Maximizer optim.Maximizer
	MISO      Reference
	MIMO      Reference

	// Parallel evaluates the K columns of a grid concurrently.
	Parallel bool

	Logger logrus.FieldLogger
}

// Searcher runs the inner SNR optimization and the (M, K) grid search.
// It holds no mutable state and is safe for concurrent use.
type Searcher struct {
	model efficiency.Model
	opts  Options
	log   logrus.FieldLogger
}

// New validates opts and returns a Searcher over model.
func New(model efficiency.Model, opts Options) (*Searcher, error) {
	if opts.MMax < 1 || opts.KMax < 1 {
		return nil, fmt.Errorf("%w: mmax=%d kmax=%d", ErrBadGrid, opts.MMax, opts.KMax)
	}
	if opts.Upper == 0 {
		opts.Upper = DefaultUpper
	}
	if !(opts.Upper > 0) {
		return nil, fmt.Errorf("%w: %g", ErrBadUpper, opts.Upper)
	}
	if opts.Maximizer == nil {
		opts.Maximizer = optim.NewBrent()
	}
	if opts.MISO == (Reference{}) {
		opts.MISO = DefaultMISO
	}
	if opts.MIMO == (Reference{}) {
		opts.MIMO = DefaultMIMO
	}
	for _, ref := range []Reference{opts.MISO, opts.MIMO} {
		if ref.M < 1 || ref.K < 1 {
			return nil, fmt.Errorf("%w: %s=(%d,%d)", ErrBadReference, ref.Name, ref.M, ref.K)
		}
	}

	lg := opts.Logger
	if lg == nil {
		lg = logrus.StandardLogger()
	}

	return &Searcher{model: model, opts: opts, log: lg}, nil
}

// Model returns the EE model the searcher evaluates.
func (s *Searcher) Model() efficiency.Model { return s.model }

// Options returns the resolved options.
func (s *Searcher) Options() Options { return s.opts }

// OptimizeSNR maximizes the EE over the SNR for a fixed operating point.
// ok is false when no SNR in [0, Upper] yields a feasible, positive EE;
// snr and ee are zero in that case.
func (s *Searcher) OptimizeSNR(op efficiency.OperatingPoint) (snr, ee float64, ok bool) {
	lo, hi, found := s.model.FeasibleSNRRange(op)
	if !found {
		return 0, 0, false
	}
	if lo < 0 {
		lo = 0
	}
	if hi > s.opts.Upper {
		hi = s.opts.Upper
	}
	if hi <= lo {
		return 0, 0, false
	}

	res, err := s.opts.Maximizer.Maximize(s.model.Objective(op), lo, hi)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"m": op.M, "k": op.K}).Debug("snr maximization failed")
		return 0, 0, false
	}
	if res.X < 0 || res.X > s.opts.Upper || !(res.F > 0) {
		return 0, 0, false
	}
	return res.X, res.F, true
}

// Evaluate runs OptimizeSNR followed by the feasibility check. Infeasible
// operating points come back as the zero Candidate.
func (s *Searcher) Evaluate(op efficiency.OperatingPoint) efficiency.Candidate {
	snr, ee, ok := s.OptimizeSNR(op)
	if !ok {
		return efficiency.Candidate{}
	}
	beta, feasible := s.model.EvaluateFeasibility(snr, op)
	if !feasible || !(ee > 0) {
		return efficiency.Candidate{}
	}
	return efficiency.Candidate{SNR: snr, EE: ee, Beta: beta, Feasible: true}
}
