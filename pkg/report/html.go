package report

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
)

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// SaveJSON writes rows as an indented JSON array to path.
func SaveJSON(path string, rows []Row) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteJSON(f, rows)
}

// Figure is an image referenced from the HTML report.
type Figure struct {
	Title string
	Path  string
}

// WriteHTML renders a standalone HTML report.
func WriteHTML(w io.Writer, rows []Row, sum Summary, figures []Figure) error {
	type view struct {
		Rows    []Row
		Sum     Summary
		BestEE  string
		Figures []Figure
	}

	var buf bytes.Buffer
	data := view{
		Rows:    rows,
		Sum:     sum,
		BestEE:  sum.BestEE(),
		Figures: figures,
	}
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// SaveHTML writes the HTML report to path.
func SaveHTML(path string, rows []Row, sum Summary, figures []Figure) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteHTML(f, rows, sum, figures)
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Maximal EE Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
img{max-width:100%;margin:8px 0}
.small{color:#555}
.off{color:#a00}
</style>

<h1>Maximal Energy Efficiency Report</h1>

<p class="small">
Densities: {{.Sum.Points}} &nbsp;|&nbsp;
Feasible: {{.Sum.Feasible}} &nbsp;|&nbsp;
Best EE: {{.BestEE}}
</p>

<h2>Summary</h2>
<ul>
<li>Best EE: {{.BestEE}} at {{printf "%.3g" .Sum.Best.Density}} UE/km² (M={{.Sum.Best.M}}, K={{.Sum.Best.K}})</li>
<li>Mean gain vs MISO: {{printf "%.2f" .Sum.GainMISO}}x</li>
<li>Mean gain vs MIMO: {{printf "%.2f" .Sum.GainMIMO}}x</li>
<li>Mean area power: {{printf "%.3g" .Sum.Area.Power}} W/km² (transmit share {{printf "%.2f" .Sum.Area.TransmitShare}})</li>
<li>Elapsed: {{.Sum.Elapsed}}</li>
</ul>

{{if .Figures}}
<h2>Figures</h2>
{{range .Figures}}
<figure><img src="{{.Path}}" alt="{{.Title}}"><figcaption>{{.Title}}</figcaption></figure>
{{end}}
{{end}}

<h2>Per-density</h2>
<table>
<thead>
<tr>
<th>density (UE/km²)</th><th>M</th><th>K</th><th>SNR</th><th>beta</th>
<th>EE (bit/J)</th><th>BS/km²</th><th>MISO (bit/J)</th><th>MIMO (bit/J)</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td style="text-align:left">{{printf "%.4g" .Density}}</td>
{{if .Feasible}}
<td>{{.M}}</td>
<td>{{.K}}</td>
<td>{{printf "%.3f" .SNR}}</td>
<td>{{printf "%.3f" .Beta}}</td>
<td>{{printf "%.4g" .EE}}</td>
<td>{{printf "%.4g" .BSDensity}}</td>
{{else}}
<td colspan="6" class="off">infeasible</td>
{{end}}
<td>{{printf "%.4g" .MISO}}</td>
<td>{{printf "%.4g" .MIMO}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
