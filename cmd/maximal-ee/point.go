package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Drsuh/maximal-EE/pkg/report"
	"github.com/Drsuh/maximal-EE/pkg/search"
	"github.com/Drsuh/maximal-EE/pkg/types"
)

func newPointCmd(a *app) *cobra.Command {
	var (
		density  float64
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "point",
		Short: "Search the (M, K) grid at a single user density",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadConfig()
			if err != nil {
				return err
			}
			s, err := c.Searcher(a.log)
			if err != nil {
				return err
			}

			start := time.Now()
			g, err := s.SearchGrid(cmd.Context(), density)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			a.log.WithFields(logrus.Fields{
				"density": density,
				"elapsed": elapsed.Round(time.Millisecond),
			}).Debug("grid searched")

			report.PrintGridTable(a.out, g)

			p := g.Point
			fmt.Fprintln(a.out)
			if p.Feasible {
				fmt.Fprintf(a.out, "optimum at %s: M=%d K=%d SNR=%.3f beta=%.3f EE=%s BS density=%.4g/km²\n",
					types.Density(density), p.M, p.K, p.SNR, p.Beta, types.BitsPerJoule(p.EE).Humanized(), p.BSDensity)
			} else {
				fmt.Fprintf(a.out, "no feasible (M, K) at %s\n", types.Density(density))
			}
			fmt.Fprintf(a.out, "%s: %s  %s: %s\n",
				c.Search.MISO.Name, types.BitsPerJoule(p.MISO).Humanized(),
				c.Search.MIMO.Name, types.BitsPerJoule(p.MIMO).Humanized())

			if xlsxPath != "" {
				one := report.Rows([]search.PointResult{p})
				if err := report.SaveXLSX(xlsxPath, one, report.Summarize(one, elapsed), g); err != nil {
					return fmt.Errorf("xlsx %s: %w", xlsxPath, err)
				}
				a.log.WithField("path", xlsxPath).Info("written")
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&density, "density", "d", 1, "user density (UE/km²)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the EE grid to an XLSX file")
	return cmd
}
