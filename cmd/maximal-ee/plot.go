package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Drsuh/maximal-EE/pkg/plot"
	"github.com/Drsuh/maximal-EE/pkg/report"
)

func newPlotCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "plot <sweep.csv>",
		Short: "Render the figures from a CSV written by sweep",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rows, err := report.LoadCSV(args[0])
			if err != nil {
				return err
			}
			paths, err := plot.SaveAll(dir, rows)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(a.out, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", ".", "output directory")
	return cmd
}
