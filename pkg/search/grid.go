package search

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/Drsuh/maximal-EE/pkg/efficiency"
)

// PointResult is the optimum for one user density plus the reference baselines.
type PointResult struct {
	Density   float64 // UE/km²
	EE        float64 // bit/J, 0 when nothing is feasible
	M         int
	K         int
	SNR       float64
	Beta      float64
	BSDensity float64 // BS/km², Density/K
	Feasible  bool
	MISO      float64 // bit/J at the MISO reference
	MIMO      float64 // bit/J at the MIMO reference

	// Power is the per-cell split at the optimum; zero when infeasible.
	Power efficiency.Power
}

// Grid holds the (M, K) accumulation matrices for one density.
// Row m-1 and column k-1 address the operating point (M=m, K=k).
// Infeasible entries are exactly zero in all three matrices.
type Grid struct {
	Density float64
	EE      *mat.Dense
	SNR     *mat.Dense
	Beta    *mat.Dense

	// BestM[k-1] is the EE-maximizing M for K=k, or 0 if no M is feasible.
	BestM  []int
	BestEE []float64

	Point PointResult
}

type column struct {
	ee, snr, beta []float64
}

// SearchGrid evaluates every (M, K) in [1, MMax] x [1, KMax] at density and
// reduces the matrices to the optimum. Per K, the smallest M achieving the
// maximum wins; across K, the smallest K wins.
func (s *Searcher) SearchGrid(ctx context.Context, density float64) (*Grid, error) {
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("%w: %g", ErrBadDensity, density)
	}

	mMax, kMax := s.opts.MMax, s.opts.KMax
	cols := make([]column, kMax)

	fill := func(k int) {
		col := column{
			ee:   make([]float64, mMax),
			snr:  make([]float64, mMax),
			beta: make([]float64, mMax),
		}
		for m := 1; m <= mMax; m++ {
			c := s.Evaluate(efficiency.OperatingPoint{Density: density, M: m, K: k})
			if !c.Feasible {
				continue
			}
			col.ee[m-1] = c.EE
			col.snr[m-1] = c.SNR
			col.beta[m-1] = c.Beta
		}
		cols[k-1] = col
	}

	if s.opts.Parallel {
		eg, gctx := errgroup.WithContext(ctx)
		for k := 1; k <= kMax; k++ {
			k := k
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fill(k)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for k := 1; k <= kMax; k++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fill(k)
		}
	}

	g := &Grid{
		Density: density,
		EE:      mat.NewDense(mMax, kMax, nil),
		SNR:     mat.NewDense(mMax, kMax, nil),
		Beta:    mat.NewDense(mMax, kMax, nil),
	}
	for j, col := range cols {
		g.EE.SetCol(j, col.ee)
		g.SNR.SetCol(j, col.snr)
		g.Beta.SetCol(j, col.beta)
	}

	rows, vals := bestPerColumn(g.EE)
	g.BestM = make([]int, kMax)
	g.BestEE = vals
	for j, r := range rows {
		if r >= 0 {
			g.BestM[j] = r + 1
		}
	}

	g.Point = s.point(g, rows, vals)
	s.log.WithFields(logrus.Fields{
		"density": density,
		"m":       g.Point.M,
		"k":       g.Point.K,
		"ee":      g.Point.EE,
	}).Debug("grid searched")
	return g, nil
}

func (s *Searcher) point(g *Grid, rows []int, vals []float64) PointResult {
	p := PointResult{
		Density: g.Density,
		MISO:    s.referenceEE(g, s.opts.MISO),
		MIMO:    s.referenceEE(g, s.opts.MIMO),
	}
	j, ok := bestOverColumns(vals)
	if !ok {
		return p
	}
	i := rows[j]
	p.EE = vals[j]
	p.M = i + 1
	p.K = j + 1
	p.SNR = g.SNR.At(i, j)
	p.Beta = g.Beta.At(i, j)
	p.BSDensity = g.Density / float64(p.K)
	p.Feasible = true
	p.Power, _ = s.model.Power(p.SNR, efficiency.OperatingPoint{Density: g.Density, M: p.M, K: p.K})
	return p
}

// referenceEE reads a baseline from the matrix, or evaluates it directly
// when the reference lies outside the searched grid.
func (s *Searcher) referenceEE(g *Grid, ref Reference) float64 {
	r, c := g.EE.Dims()
	if ref.M <= r && ref.K <= c {
		return g.EE.At(ref.M-1, ref.K-1)
	}
	return s.Evaluate(efficiency.OperatingPoint{Density: g.Density, M: ref.M, K: ref.K}).EE
}

// bestPerColumn returns, per column, the first row holding the column's
// strict maximum. Columns with no positive entry report row -1 and value 0.
func bestPerColumn(ee mat.Matrix) (rows []int, vals []float64) {
	r, c := ee.Dims()
	rows = make([]int, c)
	vals = make([]float64, c)
	for j := 0; j < c; j++ {
		rows[j] = -1
		for i := 0; i < r; i++ {
			if v := ee.At(i, j); v > vals[j] {
				vals[j] = v
				rows[j] = i
			}
		}
	}
	return rows, vals
}

// bestOverColumns returns the first column holding the strict maximum of vals.
func bestOverColumns(vals []float64) (int, bool) {
	best, idx := 0.0, -1
	for j, v := range vals {
		if v > best {
			best, idx = v, j
		}
	}
	return idx, idx >= 0
}
