package report

import (
	"time"

	"github.com/Drsuh/maximal-EE/pkg/consumption"
	"github.com/Drsuh/maximal-EE/pkg/search"
	"github.com/Drsuh/maximal-EE/pkg/types"
	"github.com/Drsuh/maximal-EE/pkg/util"
)

// Row is one density of a sweep as written to CSV, JSON and XLSX.
type Row struct {
	Density   float64 `csv:"density_ue_km2" json:"density_ue_km2"`
	EE        float64 `csv:"ee_bit_per_j" json:"ee_bit_per_j"`
	M         int     `csv:"m" json:"m"`
	K         int     `csv:"k" json:"k"`
	SNR       float64 `csv:"snr" json:"snr"`
	Beta      float64 `csv:"beta" json:"beta"`
	BSDensity float64 `csv:"bs_density_km2" json:"bs_density_km2"`
	Feasible  bool    `csv:"feasible" json:"feasible"`
	MISO      float64 `csv:"miso_ee_bit_per_j" json:"miso_ee_bit_per_j"`
	MIMO      float64 `csv:"mimo_ee_bit_per_j" json:"mimo_ee_bit_per_j"`
	AreaPower float64 `csv:"area_power_w_km2" json:"area_power_w_km2"`
	AreaRate  float64 `csv:"area_rate_bps_km2" json:"area_rate_bps_km2"`
	TxShare   float64 `csv:"transmit_share" json:"transmit_share"`
}

// Rows flattens sweep points into report rows, adding the per-km² figures.
func Rows(points []search.PointResult) []Row {
	rows := make([]Row, len(points))
	for i, p := range points {
		area := consumption.AreaOf(p.Power, p.BSDensity)
		rows[i] = Row{
			Density:   p.Density,
			EE:        p.EE,
			M:         p.M,
			K:         p.K,
			SNR:       p.SNR,
			Beta:      p.Beta,
			BSDensity: p.BSDensity,
			Feasible:  p.Feasible,
			MISO:      p.MISO,
			MIMO:      p.MIMO,
			AreaPower: area.Power,
			AreaRate:  area.Rate,
			TxShare:   area.TransmitShare,
		}
	}
	return rows
}

// Summary condenses a sweep for report headers.
type Summary struct {
	Points   int
	Feasible int
	Best     Row // highest EE over all densities
	// GainMISO and GainMIMO are mean ratios optimum/reference over densities
	// where the reference is feasible.
	GainMISO float64
	GainMIMO float64
	// Area holds mean per-km² figures over feasible densities.
	Area      consumption.Area
	PeakPower float64 // highest area power, W/km²
	Elapsed   time.Duration
}

// Summarize aggregates feasible rows. Infeasible rows count only towards Points.
func Summarize(rows []Row, elapsed time.Duration) Summary {
	s := Summary{Points: len(rows), Elapsed: elapsed}
	var sumMISO, sumMIMO float64
	var nMISO, nMIMO int
	acc := consumption.New()
	for _, r := range rows {
		if !r.Feasible {
			continue
		}
		s.Feasible++
		acc.Apply(r.area())
		if r.EE > s.Best.EE {
			s.Best = r
		}
		if r.MISO > 0 {
			sumMISO += r.EE / r.MISO
			nMISO++
		}
		if r.MIMO > 0 {
			sumMIMO += r.EE / r.MIMO
			nMIMO++
		}
	}
	s.GainMISO = util.SafeDiv(sumMISO, float64(nMISO))
	s.GainMIMO = util.SafeDiv(sumMIMO, float64(nMIMO))
	s.Area = acc.Averages()
	s.PeakPower = acc.PeakPower()
	return s
}

func (r Row) area() consumption.Area {
	return consumption.Area{
		BSDensity:     r.BSDensity,
		Power:         r.AreaPower,
		Rate:          r.AreaRate,
		TransmitShare: r.TxShare,
	}
}

// BestEE returns the highest EE in human units.
func (s Summary) BestEE() string {
	return types.BitsPerJoule(s.Best.EE).Humanized()
}
