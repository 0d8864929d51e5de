package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/Drsuh/maximal-EE/pkg/search"
	"github.com/Drsuh/maximal-EE/pkg/util"
)

// Options controls execution of a sweep. Results never depend on them.
type Options struct {
	// Workers bounds concurrent density points; <= 0 means runtime.NumCPU().
	Workers int
	// ProgressEvery logs progress after every N completed points; 0 disables.
	ProgressEvery int
	Logger        logrus.FieldLogger
}

// Result is the ordered outcome of a sweep; Points[i] belongs to the i-th
// input density.
type Result struct {
	Points  []search.PointResult
	Elapsed time.Duration
}

// Densities returns n log-spaced values from 10^minExp to 10^maxExp inclusive.
func Densities(minExp, maxExp float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n=%d", ErrNoDensities, n)
	}
	if math.IsNaN(minExp) || math.IsNaN(maxExp) || maxExp < minExp {
		return nil, fmt.Errorf("%w: exponents [%g, %g]", ErrBadDensity, minExp, maxExp)
	}
	lo, hi := math.Pow(10, minExp), math.Pow(10, maxExp)
	if n == 1 {
		return []float64{lo}, nil
	}
	return floats.LogSpan(make([]float64, n), lo, hi), nil
}

// Run searches the (M, K) grid for every density and keeps input order.
func Run(ctx context.Context, densities []float64, s *search.Searcher, opts Options) (*Result, error) {
	if len(densities) == 0 {
		return nil, ErrNoDensities
	}
	for i, d := range densities {
		if !(d > 0) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("%w: densities[%d]=%g", ErrBadDensity, i, d)
		}
	}

	lg := opts.Logger
	if lg == nil {
		lg = logrus.StandardLogger()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	points := make([]search.PointResult, len(densities))
	prog := newProgress(lg, len(densities), opts.ProgressEvery, start)

	lg.WithFields(logrus.Fields{
		"points":  len(densities),
		"workers": workers,
		"mmax":    s.Options().MMax,
		"kmax":    s.Options().KMax,
	}).Info("sweep started")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range densities {
		i, d := i, d
		g.Go(func() error {
			grid, err := s.SearchGrid(gctx, d)
			if err != nil {
				return fmt.Errorf("density %g: %w", d, err)
			}
			points[i] = grid.Point
			prog.done(d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Points: points, Elapsed: time.Since(start)}
	lg.WithFields(logrus.Fields{
		"points":    len(points),
		"elapsed":   res.Elapsed.Round(time.Millisecond),
		"per_point": prog.perPoint().Round(time.Microsecond),
	}).Info("sweep finished")
	return res, nil
}

// progress reports completion counts with an EMA-smoothed ETA.
type progress struct {
	mu    sync.Mutex
	log   logrus.FieldLogger
	total int
	every int
	n     int
	last  time.Time
	ema   *util.EMA
}

func newProgress(lg logrus.FieldLogger, total, every int, start time.Time) *progress {
	return &progress{log: lg, total: total, every: every, last: start, ema: util.NewEMA(0.2)}
}

// perPoint returns the smoothed duration of one density.
func (p *progress) perPoint() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(p.ema.Value() * float64(time.Second))
}

func (p *progress) done(density float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	per := p.ema.Next(now.Sub(p.last).Seconds())
	p.last = now
	p.n++

	if p.every <= 0 || (p.n%p.every != 0 && p.n != p.total) {
		return
	}
	eta := time.Duration(per * float64(p.total-p.n) * float64(time.Second))
	p.log.WithFields(logrus.Fields{
		"done":    p.n,
		"total":   p.total,
		"pct":     fmt.Sprintf("%.1f", 100*util.Clamp01(util.SafeDiv(float64(p.n), float64(p.total)))),
		"density": util.FmtFloat(density),
		"eta":     eta.Round(time.Second),
	}).Info("sweep progress")
}
