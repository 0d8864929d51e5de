package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMA_FirstSampleSetsState(t *testing.T) {
	e := NewEMA(0.5)
	assert.Equal(t, 0.0, e.Value(), "no samples yet")
	assert.Equal(t, 10.0, e.Next(10), "first output should equal first input")
	assert.InDelta(t, 15.0, e.Next(20), 1e-9, "EMA(0.5) of 10 then 20 should be 15")
	assert.InDelta(t, 15.0, e.Value(), 1e-9)
}

func TestEMA_ClosedFormMatch(t *testing.T) {
	alpha := 0.3
	target := 2.5 // seconds per density point
	steps := 40

	e := NewEMA(alpha)
	_ = e.Next(0.0)

	var out float64
	for i := 0; i < steps; i++ {
		out = e.Next(target)
	}

	// y_n = target * (1 - (1-alpha)^n), given initial 0 before applying target
	want := target * (1 - math.Pow(1-alpha, float64(steps)))
	assert.InDelta(t, want, out, 1e-9)
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, SafeDiv(4, 2))
	assert.Equal(t, 0.0, SafeDiv(4, 0))
	assert.Equal(t, 0.0, SafeDiv(4, 1e-13))
	assert.Equal(t, -2.0, SafeDiv(4, -2))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 1.0, Clamp01(3))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestFmtFloat(t *testing.T) {
	assert.Equal(t, "1.5", FmtFloat(1.5))
	assert.Equal(t, "2.75768e+06", FmtFloat(2757681.4))
	assert.Equal(t, "0", FmtFloat(0))
}

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats("1, 10,1e2,,")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 10, 100}, got)

	got, err = ParseFloats("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseFloats("1,x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x"`)
}
