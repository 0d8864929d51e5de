package consumption

import "github.com/Drsuh/maximal-EE/pkg/efficiency"

// Area is the per-km² view of one operating point.
// Units:
//   - BSDensity: BS/km²
//   - Power: W/km² (all cells, transmit and circuit)
//   - Rate: bit/s/km²
//   - TransmitShare: fraction of Power spent in the amplifiers [0..1]
type Area struct {
	BSDensity     float64
	Power         float64
	Rate          float64
	TransmitShare float64
}

// AreaOf scales a per-cell power split by the BS density.
func AreaOf(p efficiency.Power, bsDensity float64) Area {
	if !(bsDensity > 0) {
		return Area{}
	}
	a := Area{
		BSDensity: bsDensity,
		Power:     bsDensity * p.Total(),
		Rate:      bsDensity * p.Rate,
	}
	if t := p.Total(); t > 0 {
		a.TransmitShare = p.Transmit / t
	}
	return a
}

// EE returns the area energy efficiency in bit/J; it equals the per-cell EE.
func (a Area) EE() float64 {
	if a.Power <= 0 {
		return 0
	}
	return a.Rate / a.Power
}
