package consumption

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Drsuh/maximal-EE/pkg/efficiency"
)

func expect(p efficiency.Power, bs float64) (power, rate, share float64) {
	total := p.Transmit + p.Static + p.Users + p.Antennas + p.Processing + p.Coding
	return bs * total, bs * p.Rate, p.Transmit / total
}

func TestConsumption_Sequence_WithLogs(t *testing.T) {
	m := efficiency.New(nil)
	acc := New()

	// Optimal-looking operating points at growing user density.
	points := []struct {
		snr float64
		op  efficiency.OperatingPoint
	}{
		{0.63, efficiency.OperatingPoint{Density: 1, M: 32, K: 2}},
		{0.96, efficiency.OperatingPoint{Density: 10, M: 40, K: 3}},
		{15, efficiency.OperatingPoint{Density: 100, M: 10, K: 1}},
		{3, efficiency.OperatingPoint{Density: 1e3, M: 200, K: 25}},
	}

	var sumPower, sumRate, sumShare float64
	t.Logf("# density |     M   K |  P_area(W/km²)   R_area(bit/s/km²)   tx share |  EE(bit/J)")
	for i, pt := range points {
		p, ok := m.Power(pt.snr, pt.op)
		require.True(t, ok, "point %d", i)

		ar := AreaOf(p, pt.op.BSDensity())
		require.True(t, acc.Apply(ar))

		expPower, expRate, expShare := expect(p, pt.op.BSDensity())
		require.InDelta(t, expPower, ar.Power, 1e-9*expPower, "power mismatch at %d", i)
		require.InDelta(t, expRate, ar.Rate, 1e-9*expRate, "rate mismatch at %d", i)
		require.InDelta(t, expShare, ar.TransmitShare, 1e-12, "share mismatch at %d", i)

		// Area EE equals the per-cell EE.
		ee := m.EnergyEfficiency(pt.snr, pt.op)
		require.InDelta(t, ee, ar.EE(), 1e-9*ee)

		sumPower += ar.Power
		sumRate += ar.Rate
		sumShare += ar.TransmitShare

		t.Logf("%9.0f | %5d %3d | %14.4f %19.4g %10.4f | %10.4g",
			pt.op.Density, pt.op.M, pt.op.K, ar.Power, ar.Rate, ar.TransmitShare, ar.EE())
	}

	avg := acc.Averages()
	n := float64(len(points))
	assert.Equal(t, len(points), acc.Count())
	assert.InDelta(t, sumPower/n, avg.Power, 1e-9)
	assert.InDelta(t, sumRate/n, avg.Rate, 1e-3)
	assert.InDelta(t, sumShare/n, avg.TransmitShare, 1e-12)
	assert.GreaterOrEqual(t, acc.PeakPower(), avg.Power)

	t.Log("---- summary (averages) ----")
	t.Logf("avg P(area) : %.6f W/km²", avg.Power)
	t.Logf("avg R(area) : %.6g bit/s/km²", avg.Rate)
	t.Logf("avg tx share: %.4f", avg.TransmitShare)
}

func TestConsumption_ZeroPaths(t *testing.T) {
	acc := New()

	assert.Equal(t, Area{}, AreaOf(efficiency.Power{Rate: 1e6, Static: 10}, 0))
	assert.False(t, acc.Apply(Area{}))
	assert.False(t, acc.Apply(AreaOf(efficiency.Power{}, 3)))
	assert.Zero(t, acc.Count())
	assert.Equal(t, Area{}, acc.Averages())
	assert.Zero(t, Area{}.EE())
}

func TestConsumption_TransmitShareGrowsWhenSparse(t *testing.T) {
	m := efficiency.New(nil)
	op := efficiency.OperatingPoint{M: 50, K: 5}

	prev := 2.0
	for _, mu := range []float64{1e4, 1e2, 1} {
		op.Density = mu
		p, ok := m.Power(20, op)
		require.True(t, ok)
		share := AreaOf(p, op.BSDensity()).TransmitShare
		require.Less(t, share, 1.0)
		if prev <= 1 {
			assert.Greater(t, share, prev, "density %g", mu)
		}
		prev = share
	}
}

func ExampleAreaOf() {
	p := efficiency.Power{Rate: 2e7, Transmit: 5, Static: 10, Antennas: 5}
	a := AreaOf(p, 0.5)
	fmt.Printf("P=%.1f W/km² R=%.0f bit/s/km² share=%.2f\n", a.Power, a.Rate, a.TransmitShare)
	// Output: P=10.0 W/km² R=10000000 bit/s/km² share=0.25
}
