package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Drsuh/maximal-EE/pkg/search"
	"github.com/Drsuh/maximal-EE/pkg/types"
)

// NewTable returns the tabwriter used by every console table.
func NewTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// PrintTableHeader writes the sweep table header.
func PrintTableHeader(tw *tabwriter.Writer) {
	fmt.Fprintln(tw, "DENSITY\tM\tK\tSNR\tbeta\tEE\tMISO\tMIMO\tBS/km²")
	fmt.Fprintln(tw, "-------\t-\t-\t---\t----\t--\t----\t----\t------")
	tw.Flush()
}

// PrintTableRow writes one sweep row and flushes it.
func PrintTableRow(tw *tabwriter.Writer, r Row) {
	if !r.Feasible {
		fmt.Fprintf(tw, "%s\t-\t-\t-\t-\tinfeasible\t%s\t%s\t-\n",
			types.Density(r.Density),
			types.BitsPerJoule(r.MISO).Humanized(), types.BitsPerJoule(r.MIMO).Humanized(),
		)
		tw.Flush()
		return
	}
	fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%s\t%s\t%s\t%.3g\n",
		types.Density(r.Density), r.M, r.K, r.SNR, r.Beta,
		types.BitsPerJoule(r.EE).Humanized(),
		types.BitsPerJoule(r.MISO).Humanized(), types.BitsPerJoule(r.MIMO).Humanized(),
		r.BSDensity,
	)
	tw.Flush()
}

// PrintGridTable prints the best M per K of a single-density grid search.
func PrintGridTable(w io.Writer, g *search.Grid) {
	tw := NewTable(w)
	fmt.Fprintln(tw, "K\tbest M\tEE\tSNR\tbeta")
	fmt.Fprintln(tw, "-\t------\t--\t---\t----")
	for j, m := range g.BestM {
		if m == 0 {
			fmt.Fprintf(tw, "%d\t-\tinfeasible\t-\t-\n", j+1)
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%.3f\t%.3f\n", j+1, m,
			types.BitsPerJoule(g.BestEE[j]).Humanized(), g.SNR.At(m-1, j), g.Beta.At(m-1, j))
	}
	tw.Flush()
}

// PrintSummary writes the closing block after a sweep.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "maximal EE over %d densities (%d feasible, %s):\n", s.Points, s.Feasible, s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "- best EE:        %s at %s (M=%d, K=%d)\n", s.BestEE(), types.Density(s.Best.Density), s.Best.M, s.Best.K)
	fmt.Fprintf(w, "- gain vs MISO:   %.2fx\n", s.GainMISO)
	fmt.Fprintf(w, "- gain vs MIMO:   %.2fx\n", s.GainMIMO)
	fmt.Fprintf(w, "- area power:     %.3g W/km² (tx share %.2f)\n", s.Area.Power, s.Area.TransmitShare)
	fmt.Fprintln(w)
}
