package plot

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Drsuh/maximal-EE/pkg/report"
	"github.com/Drsuh/maximal-EE/pkg/types"
)

const (
	width  = 900
	height = 540
)

// Files written by SaveAll, relative to the output directory.
const (
	FileEE        = "ee_vs_density.png"
	FileBSDensity = "bs_density_vs_density.png"
)

// Curve is one named polyline in log10 coordinates.
type Curve struct {
	Name string
	X, Y []float64
}

// EECurves builds the EE curves (Mbit/J over log10 user density) for the
// optimum and the two references. Points with zero EE are left out.
func EECurves(rows []report.Row) []Curve {
	pick := func(name string, val func(report.Row) float64) Curve {
		c := Curve{Name: name}
		for _, r := range rows {
			v := val(r)
			if !(v > 0) || !(r.Density > 0) {
				continue
			}
			c.X = append(c.X, math.Log10(r.Density))
			c.Y = append(c.Y, types.BitsPerJoule(v).Mbit())
		}
		return c
	}
	return []Curve{
		pick("Optimal", func(r report.Row) float64 { return r.EE }),
		pick("MISO", func(r report.Row) float64 { return r.MISO }),
		pick("MIMO", func(r report.Row) float64 { return r.MIMO }),
	}
}

// BSDensityCurve maps log10 user density to log10 BS density at the optimum.
func BSDensityCurve(rows []report.Row) Curve {
	c := Curve{Name: "Optimal"}
	for _, r := range rows {
		if !r.Feasible || !(r.BSDensity > 0) || !(r.Density > 0) {
			continue
		}
		c.X = append(c.X, math.Log10(r.Density))
		c.Y = append(c.Y, math.Log10(r.BSDensity))
	}
	return c
}

// RenderEE draws EE (Mbit/J) against user density.
func RenderEE(w io.Writer, rows []report.Row) error {
	curves := EECurves(rows)
	styles := []chart.Style{
		{StrokeColor: chart.ColorBlue, StrokeWidth: 3},
		{StrokeColor: chart.ColorRed, StrokeWidth: 2, StrokeDashArray: []float64{6, 4}},
		{StrokeColor: drawing.Color{R: 255, G: 165, B: 0, A: 255}, StrokeWidth: 2, StrokeDashArray: []float64{2, 3}},
	}
	series, xs := toSeries(curves, styles)
	if len(series) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title:  "Maximal EE vs. user density",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "User density (UE/km²)",
			Ticks: decadeTicks(xs),
		},
		YAxis: chart.YAxis{
			Name: "Energy efficiency (Mbit/J)",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.1f", v.(float64))
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	return graph.Render(chart.PNG, w)
}

// RenderBSDensity draws BS density against user density, both log10.
func RenderBSDensity(w io.Writer, rows []report.Row) error {
	c := BSDensityCurve(rows)
	series, xs := toSeries([]Curve{c}, []chart.Style{{StrokeColor: chart.ColorBlue, StrokeWidth: 3}})
	if len(series) == 0 {
		return ErrNoData
	}

	graph := chart.Chart{
		Title:  "BS density at the optimum",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "User density (UE/km²)",
			Ticks: decadeTicks(xs),
		},
		YAxis: chart.YAxis{
			Name:  "BS density (BS/km²)",
			Ticks: decadeTicks(c.Y),
		},
		Series: series,
	}
	return graph.Render(chart.PNG, w)
}

// SaveAll writes both figures into dir and returns their paths.
func SaveAll(dir string, rows []report.Row) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	jobs := []struct {
		name   string
		render func(io.Writer, []report.Row) error
	}{
		{FileEE, RenderEE},
		{FileBSDensity, RenderBSDensity},
	}
	var paths []string
	for _, j := range jobs {
		p := filepath.Join(dir, j.name)
		if err := save(p, rows, j.render); err != nil {
			return paths, fmt.Errorf("%s: %w", j.name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func save(path string, rows []report.Row, render func(io.Writer, []report.Row) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render(f, rows)
}

// toSeries drops curves with fewer than two points; go-chart cannot range them.
func toSeries(curves []Curve, styles []chart.Style) ([]chart.Series, []float64) {
	var series []chart.Series
	var xs []float64
	for i, c := range curves {
		if len(c.X) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    c.Name,
			XValues: c.X,
			YValues: c.Y,
			Style:   styles[i%len(styles)],
		})
		xs = append(xs, c.X...)
	}
	return series, xs
}

// decadeTicks labels every integer k in the span of vals as 10^k.
func decadeTicks(vals []float64) []chart.Tick {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	first, last := math.Floor(lo), math.Ceil(hi)
	if first == last {
		last++
	}
	var ticks []chart.Tick
	for k := first; k <= last; k++ {
		ticks = append(ticks, chart.Tick{Value: k, Label: fmt.Sprintf("10^%d", int(k))})
	}
	return ticks
}
