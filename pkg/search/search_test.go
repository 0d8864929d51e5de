package search

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Drsuh/maximal-EE/pkg/efficiency"
	"github.com/Drsuh/maximal-EE/pkg/optim"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newSearcher(t *testing.T, opts Options) *Searcher {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	s, err := New(efficiency.New(nil), opts)
	require.NoError(t, err)
	return s
}

func TestNew_Validation(t *testing.T) {
	m := efficiency.New(nil)

	_, err := New(m, Options{MMax: 0, KMax: 5})
	assert.ErrorIs(t, err, ErrBadGrid)

	_, err = New(m, Options{MMax: 5, KMax: -1})
	assert.ErrorIs(t, err, ErrBadGrid)

	_, err = New(m, Options{MMax: 5, KMax: 5, Upper: -1})
	assert.ErrorIs(t, err, ErrBadUpper)

	_, err = New(m, Options{MMax: 5, KMax: 5, MISO: Reference{Name: "bad", M: 0, K: 1}})
	assert.ErrorIs(t, err, ErrBadReference)

	s, err := New(m, Options{MMax: 5, KMax: 5})
	require.NoError(t, err)
	o := s.Options()
	assert.Equal(t, DefaultUpper, o.Upper)
	assert.Equal(t, DefaultMISO, o.MISO)
	assert.Equal(t, DefaultMIMO, o.MIMO)
	assert.IsType(t, &optim.Brent{}, o.Maximizer)
}

func TestOptimizeSNR_ReferencePoint(t *testing.T) {
	s := newSearcher(t, Options{MMax: 1, KMax: 1})

	snr, ee, ok := s.OptimizeSNR(efficiency.OperatingPoint{Density: 1, M: 10, K: 1})
	require.True(t, ok)
	assert.InDelta(t, 1.4417, snr, 1e-3)
	assert.InDelta(t, 2.7616e6, ee, 1e3)
	assert.GreaterOrEqual(t, snr, 0.0)
	assert.LessOrEqual(t, snr, DefaultUpper)
}

func TestOptimizeSNR_RespectsUpper(t *testing.T) {
	// At high density the unconstrained optimum sits above 100.
	s := newSearcher(t, Options{MMax: 1, KMax: 1, Upper: 50})
	snr, ee, ok := s.OptimizeSNR(efficiency.OperatingPoint{Density: 1e3, M: 10, K: 1})
	require.True(t, ok)
	assert.LessOrEqual(t, snr, 50.0)
	assert.InDelta(t, 50, snr, 1e-3)
	assert.Greater(t, ee, 0.0)
}

func TestOptimizeSNR_Infeasible(t *testing.T) {
	s := newSearcher(t, Options{MMax: 1, KMax: 1})
	for _, op := range []efficiency.OperatingPoint{
		{Density: 1, M: 1, K: 1},
		{Density: 1, M: 3, K: 1},
		{Density: 1, M: 300, K: 500},
	} {
		snr, ee, ok := s.OptimizeSNR(op)
		assert.False(t, ok)
		assert.Zero(t, snr)
		assert.Zero(t, ee)
		assert.Equal(t, efficiency.Candidate{}, s.Evaluate(op))
	}
}

func TestEvaluate_Feasible(t *testing.T) {
	s := newSearcher(t, Options{MMax: 1, KMax: 1})
	c := s.Evaluate(efficiency.OperatingPoint{Density: 1, M: 91, K: 10})
	require.True(t, c.Feasible)
	assert.GreaterOrEqual(t, c.Beta, 1.0)
	assert.InDelta(t, 3.855e5, c.EE, 1e3)
	assert.InDelta(t, 0.7827, c.SNR, 1e-3)
}

func TestSearchGrid_UnitDensity(t *testing.T) {
	s := newSearcher(t, Options{MMax: 60, KMax: 10})

	g, err := s.SearchGrid(context.Background(), 1)
	require.NoError(t, err)

	p := g.Point
	require.True(t, p.Feasible)
	assert.Equal(t, 2, p.K)
	assert.GreaterOrEqual(t, p.M, 25)
	assert.LessOrEqual(t, p.M, 40)
	assert.InDelta(t, 3.33e6, p.EE, 5e3)
	assert.GreaterOrEqual(t, p.Beta, 1.0)
	assert.InDelta(t, 0.5, p.BSDensity, 1e-12)
	t.Logf("M=%d K=%d snr=%.3f beta=%.3f ee=%.4g", p.M, p.K, p.SNR, p.Beta, p.EE)

	// MISO lies in the grid and is read from it.
	assert.Equal(t, g.EE.At(9, 0), p.MISO)
	assert.InDelta(t, 2.7616e6, p.MISO, 1e3)
	// MIMO (M=91) lies outside and is evaluated directly.
	direct := s.Evaluate(efficiency.OperatingPoint{Density: 1, M: 91, K: 10})
	assert.Equal(t, direct.EE, p.MIMO)

	assert.Equal(t, p.EE, g.BestEE[p.K-1])
	assert.Equal(t, p.M, g.BestM[p.K-1])
	for _, v := range g.BestEE {
		assert.LessOrEqual(t, v, p.EE)
	}
}

func TestSearchGrid_MatrixInvariants(t *testing.T) {
	s := newSearcher(t, Options{MMax: 40, KMax: 8})
	g, err := s.SearchGrid(context.Background(), 10)
	require.NoError(t, err)

	r, c := g.EE.Dims()
	require.Equal(t, 40, r)
	require.Equal(t, 8, c)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ee, snr, beta := g.EE.At(i, j), g.SNR.At(i, j), g.Beta.At(i, j)
			require.False(t, math.IsNaN(ee))
			require.GreaterOrEqual(t, ee, 0.0)
			if ee == 0 {
				assert.Zero(t, snr, "M=%d K=%d", i+1, j+1)
				assert.Zero(t, beta, "M=%d K=%d", i+1, j+1)
				continue
			}
			assert.GreaterOrEqual(t, beta, 1.0, "M=%d K=%d", i+1, j+1)
			assert.Greater(t, snr, 0.0)
		}
	}
	// Too few antennas to reach the rate target at all.
	for i := 0; i < 3; i++ {
		assert.Zero(t, g.EE.At(i, 0))
	}
}

func TestSearchGrid_ReferenceAgreesWithEvaluate(t *testing.T) {
	s := newSearcher(t, Options{MMax: 100, KMax: 10})
	g, err := s.SearchGrid(context.Background(), 100)
	require.NoError(t, err)

	miso := s.Evaluate(efficiency.OperatingPoint{Density: 100, M: 10, K: 1})
	mimo := s.Evaluate(efficiency.OperatingPoint{Density: 100, M: 91, K: 10})
	assert.Equal(t, miso.EE, g.Point.MISO)
	assert.Equal(t, mimo.EE, g.Point.MIMO)
	assert.Equal(t, g.EE.At(90, 9), g.Point.MIMO)
	assert.LessOrEqual(t, g.Point.MISO, g.Point.EE)
	assert.LessOrEqual(t, g.Point.MIMO, g.Point.EE)
}

func TestSearchGrid_ParallelMatchesSequential(t *testing.T) {
	seq := newSearcher(t, Options{MMax: 30, KMax: 6})
	par := newSearcher(t, Options{MMax: 30, KMax: 6, Parallel: true})

	a, err := seq.SearchGrid(context.Background(), 50)
	require.NoError(t, err)
	b, err := par.SearchGrid(context.Background(), 50)
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.EE, b.EE))
	assert.True(t, mat.Equal(a.SNR, b.SNR))
	assert.True(t, mat.Equal(a.Beta, b.Beta))
	assert.Equal(t, a.Point, b.Point)

	again, err := seq.SearchGrid(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, a.Point, again.Point)
}

func TestSearchGrid_NothingFeasible(t *testing.T) {
	s := newSearcher(t, Options{MMax: 3, KMax: 2})
	g, err := s.SearchGrid(context.Background(), 1)
	require.NoError(t, err)

	p := g.Point
	assert.False(t, p.Feasible)
	assert.Zero(t, p.EE)
	assert.Zero(t, p.M)
	assert.Zero(t, p.K)
	assert.Zero(t, p.BSDensity)
	assert.Equal(t, []int{0, 0}, g.BestM)
}

func TestSearchGrid_Errors(t *testing.T) {
	s := newSearcher(t, Options{MMax: 5, KMax: 5})
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := s.SearchGrid(context.Background(), d)
		assert.ErrorIs(t, err, ErrBadDensity)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.SearchGrid(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)

	par := newSearcher(t, Options{MMax: 5, KMax: 5, Parallel: true})
	_, err = par.SearchGrid(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBestPerColumn_TieBreak(t *testing.T) {
	ee := mat.NewDense(4, 3, []float64{
		0, 5, 0,
		2, 7, 0,
		2, 7, 0,
		1, 3, 0,
	})
	rows, vals := bestPerColumn(ee)
	assert.Equal(t, []int{1, 1, -1}, rows, "first row wins a tie")
	assert.Equal(t, []float64{2, 7, 0}, vals)

	j, ok := bestOverColumns([]float64{3, 7, 7, 1})
	require.True(t, ok)
	assert.Equal(t, 1, j, "first column wins a tie")

	_, ok = bestOverColumns([]float64{0, 0})
	assert.False(t, ok)
}

func TestSearchGrid_ReferenceScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("full 300x40 grid")
	}
	cfg := efficiency.New(nil).Config()
	require.Equal(t, 3.76, cfg.Alpha)
	require.Equal(t, 0.05, cfg.Epsilon)
	require.Equal(t, 3.0, efficiency.New(nil).Gamma())

	seq := newSearcher(t, Options{MMax: 300, KMax: 40})
	par := newSearcher(t, Options{MMax: 300, KMax: 40, Parallel: true})

	a, err := seq.SearchGrid(context.Background(), 1)
	require.NoError(t, err)
	p := a.Point
	require.True(t, p.Feasible)
	require.Greater(t, p.EE, 0.0)
	require.GreaterOrEqual(t, p.Beta, 1.0)
	assert.Equal(t, 2, p.K)
	assert.InDelta(t, 3.3299e6, p.EE, 1e3)
	t.Logf("M=%d K=%d snr=%.4f beta=%.3f ee=%.5g", p.M, p.K, p.SNR, p.Beta, p.EE)

	again, err := seq.SearchGrid(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, p, again.Point)

	b, err := par.SearchGrid(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, p, b.Point)
	assert.True(t, mat.Equal(a.EE, b.EE))
}

func TestSearchGrid_AchievableEEGrowsWithDensity(t *testing.T) {
	if testing.Short() {
		t.Skip("four full grids")
	}
	s := newSearcher(t, Options{MMax: 300, KMax: 40, Parallel: true})

	var prev *Grid
	for _, mu := range []float64{1, 10, 100, 1000} {
		g, err := s.SearchGrid(context.Background(), mu)
		require.NoError(t, err)
		if prev != nil {
			for k, m := range prev.BestM {
				if m == 0 {
					continue
				}
				// Same (M, K) at the denser point, SNR re-optimized.
				got := g.EE.At(m-1, k)
				assert.GreaterOrEqual(t, got, prev.BestEE[k]*(1-1e-9),
					"density %g, M=%d K=%d", mu, m, k+1)
			}
		}
		prev = g
	}
}
