package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Drsuh/maximal-EE/pkg/config"
	"github.com/Drsuh/maximal-EE/pkg/plot"
	"github.com/Drsuh/maximal-EE/pkg/report"
	"github.com/Drsuh/maximal-EE/pkg/sweep"
)

func newSweepCmd(a *app) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Optimize M, K and SNR over a range of user densities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.loadConfig()
			if err != nil {
				return err
			}
			return a.runSweep(cmd.Context(), c, pretty)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&pretty, "pretty", true, "print a result table")
	f.Float64("min-exp", 0, "log10 of the smallest user density (UE/km²)")
	f.Float64("max-exp", 0, "log10 of the largest user density (UE/km²)")
	f.IntP("points", "n", 0, "number of log-spaced densities")
	f.String("densities", "", "explicit comma-separated densities, e.g. 1,10,100")
	f.IntP("workers", "w", 0, "densities searched concurrently (0 = all CPUs)")
	f.Int("progress-every", 0, "log progress every N densities")
	f.String("csv", "", "write per-density rows to CSV file")
	f.String("xlsx", "", "write summary and per-density rows to XLSX file")
	f.String("json", "", "write per-density rows to JSON file")
	f.String("html", "", "write an HTML report")
	f.String("figures", "", "directory for PNG figures")

	a.bind(f, map[string]string{
		"sweep.density_min_exp": "min-exp",
		"sweep.density_max_exp": "max-exp",
		"sweep.points":          "points",
		"sweep.densities":       "densities",
		"sweep.workers":         "workers",
		"sweep.progress_every":  "progress-every",
		"output.csv":            "csv",
		"output.xlsx":           "xlsx",
		"output.json":           "json",
		"output.html":           "html",
		"output.figure_dir":     "figures",
	})
	return cmd
}

func (a *app) runSweep(ctx context.Context, c *config.Config, pretty bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := c.Searcher(a.log)
	if err != nil {
		return err
	}
	densities, err := c.Densities()
	if err != nil {
		return err
	}

	res, err := sweep.Run(ctx, densities, s, c.SweepOptions(a.log))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			a.log.Info("interrupted")
		}
		return err
	}

	rows := report.Rows(res.Points)
	sum := report.Summarize(rows, res.Elapsed)

	if pretty {
		tw := report.NewTable(a.out)
		report.PrintTableHeader(tw)
		for _, r := range rows {
			report.PrintTableRow(tw, r)
		}
	}
	report.PrintSummary(a.out, sum)

	return a.export(c.Output, rows, sum)
}

// export writes every configured output; failures are collected, not fatal
// to the remaining outputs.
func (a *app) export(o config.OutputConfig, rows []report.Row, sum report.Summary) error {
	var errs []error
	note := func(kind, path string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", kind, path, err))
			return
		}
		a.log.WithFields(logrus.Fields{"kind": kind, "path": path}).Info("written")
	}

	if o.CSV != "" {
		note("csv", o.CSV, report.SaveCSV(o.CSV, rows))
	}
	if o.JSON != "" {
		note("json", o.JSON, report.SaveJSON(o.JSON, rows))
	}
	if o.XLSX != "" {
		note("xlsx", o.XLSX, report.SaveXLSX(o.XLSX, rows, sum, nil))
	}

	var figures []report.Figure
	if o.FigureDir != "" {
		paths, err := plot.SaveAll(o.FigureDir, rows)
		switch {
		case errors.Is(err, plot.ErrNoData):
			a.log.WithError(err).Warn("figures skipped")
		default:
			note("figures", o.FigureDir, err)
		}
		for _, p := range paths {
			figures = append(figures, report.Figure{Title: filepath.Base(p), Path: p})
		}
	}

	if o.HTML != "" {
		// Figure paths are made relative to the HTML file when possible.
		for i, fig := range figures {
			if rel, err := filepath.Rel(filepath.Dir(o.HTML), fig.Path); err == nil {
				figures[i].Path = rel
			}
		}
		note("html", o.HTML, report.SaveHTML(o.HTML, rows, sum, figures))
	}
	return errors.Join(errs...)
}
