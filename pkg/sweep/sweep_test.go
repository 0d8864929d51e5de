package sweep

import (
	"bytes"
	"context"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Drsuh/maximal-EE/pkg/efficiency"
	"github.com/Drsuh/maximal-EE/pkg/search"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newSearcher(t *testing.T, mMax, kMax int) *search.Searcher {
	t.Helper()
	s, err := search.New(efficiency.New(nil), search.Options{
		MMax:   mMax,
		KMax:   kMax,
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	return s
}

func TestDensities(t *testing.T) {
	d, err := Densities(0, 5, 200)
	require.NoError(t, err)
	require.Len(t, d, 200)
	assert.InDelta(t, 1, d[0], 1e-12)
	assert.InDelta(t, 1e5, d[199], 1e-6)
	for i := 1; i < len(d); i++ {
		require.Greater(t, d[i], d[i-1])
	}
	// Constant ratio between neighbours.
	r := d[1] / d[0]
	assert.InDelta(t, r, d[100]/d[99], 1e-9)

	d, err = Densities(0, 2, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 10, 100}, d, 1e-9)

	d, err = Densities(2, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{100}, d)

	_, err = Densities(0, 5, 0)
	assert.ErrorIs(t, err, ErrNoDensities)
	_, err = Densities(5, 0, 10)
	assert.ErrorIs(t, err, ErrBadDensity)
	_, err = Densities(math.NaN(), 0, 10)
	assert.ErrorIs(t, err, ErrBadDensity)
}

func TestRun_KeepsInputOrder(t *testing.T) {
	s := newSearcher(t, 40, 6)
	densities := []float64{100, 1, 10}

	res, err := Run(context.Background(), densities, s, Options{Workers: 3, Logger: quietLogger()})
	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	assert.Equal(t, densities, res.Densities())

	for i, p := range res.Points {
		g, err := s.SearchGrid(context.Background(), densities[i])
		require.NoError(t, err)
		assert.Equal(t, g.Point, p, "density %g", densities[i])
	}
}

func TestRun_WorkersDoNotChangeResults(t *testing.T) {
	s := newSearcher(t, 30, 5)
	densities, err := Densities(0, 4, 9)
	require.NoError(t, err)

	one, err := Run(context.Background(), densities, s, Options{Workers: 1, Logger: quietLogger()})
	require.NoError(t, err)
	four, err := Run(context.Background(), densities, s, Options{Workers: 4, Logger: quietLogger()})
	require.NoError(t, err)
	auto, err := Run(context.Background(), densities, s, Options{Logger: quietLogger()})
	require.NoError(t, err)

	assert.Equal(t, one.Points, four.Points)
	assert.Equal(t, one.Points, auto.Points)
}

func TestRun_Accessors(t *testing.T) {
	s := newSearcher(t, 40, 6)
	res, err := Run(context.Background(), []float64{1, 1e3}, s, Options{Workers: 2, Logger: quietLogger()})
	require.NoError(t, err)

	ee := res.EE()
	cfgs := res.Configs()
	bs := res.BSDensity()
	miso, mimo := res.MISO(), res.MIMO()
	require.Len(t, ee, 2)

	for i, p := range res.Points {
		require.True(t, p.Feasible)
		assert.Equal(t, p.EE, ee[i])
		assert.Equal(t, Config{M: p.M, K: p.K}, cfgs[i])
		assert.InDelta(t, p.Density/float64(p.K), bs[i], 1e-12)
		assert.Equal(t, p.MISO, miso[i])
		assert.Equal(t, p.MIMO, mimo[i])
		assert.LessOrEqual(t, miso[i], ee[i])
	}
	// Denser deployments are more efficient.
	assert.Greater(t, ee[1], ee[0])
}

func TestRun_LogsProgress(t *testing.T) {
	var buf bytes.Buffer
	lg := logrus.New()
	lg.SetOutput(&buf)
	lg.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	s := newSearcher(t, 10, 2)
	_, err := Run(context.Background(), []float64{1, 2, 3, 4}, s, Options{Workers: 1, ProgressEvery: 2, Logger: lg})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sweep started")
	assert.Contains(t, out, "sweep progress")
	assert.Contains(t, out, "done=2")
	assert.Contains(t, out, "done=4")
	assert.Contains(t, out, "sweep finished")
	assert.Contains(t, out, "per_point=")
	assert.NotContains(t, out, "done=1 ")
}

func TestRun_Errors(t *testing.T) {
	s := newSearcher(t, 5, 2)
	opts := Options{Logger: quietLogger()}

	_, err := Run(context.Background(), nil, s, opts)
	assert.ErrorIs(t, err, ErrNoDensities)

	_, err = Run(context.Background(), []float64{1, 0}, s, opts)
	assert.ErrorIs(t, err, ErrBadDensity)

	_, err = Run(context.Background(), []float64{1, math.Inf(1)}, s, opts)
	assert.ErrorIs(t, err, ErrBadDensity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, []float64{1, 10}, s, opts)
	assert.ErrorIs(t, err, context.Canceled)
}
