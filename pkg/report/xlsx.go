package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Drsuh/maximal-EE/pkg/search"
)

const (
	SheetSummary = "Summary"
	SheetSweep   = "Sweep"
	SheetGrid    = "Grid"
)

var sweepHeader = []any{
	"density (UE/km²)", "EE (bit/J)", "M", "K", "SNR", "beta",
	"BS density (BS/km²)", "feasible", "MISO EE (bit/J)", "MIMO EE (bit/J)",
	"area power (W/km²)", "area rate (bit/s/km²)", "transmit share",
}

// SaveXLSX writes a Summary and a Sweep sheet. When grid is non-nil a Grid
// sheet with its EE matrix (rows M, columns K) is added.
func SaveXLSX(path string, rows []Row, sum Summary, grid *search.Grid) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	if err := writeSummary(f, sum); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeSweep(f, rows); err != nil {
		return fmt.Errorf("sweep sheet: %w", err)
	}
	if grid != nil {
		if err := writeGrid(f, grid); err != nil {
			return fmt.Errorf("grid sheet: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSummary(f *excelize.File, s Summary) error {
	kv := [][]any{
		{"Item", "Value"},
		{"Points", s.Points},
		{"Feasible", s.Feasible},
		{"Best EE (bit/J)", s.Best.EE},
		{"Best density (UE/km²)", s.Best.Density},
		{"Best M", s.Best.M},
		{"Best K", s.Best.K},
		{"Mean gain vs MISO", s.GainMISO},
		{"Mean gain vs MIMO", s.GainMIMO},
		{"Mean area power (W/km²)", s.Area.Power},
		{"Mean area rate (bit/s/km²)", s.Area.Rate},
		{"Peak area power (W/km²)", s.PeakPower},
		{"Elapsed (s)", s.Elapsed.Seconds()},
	}
	for i, r := range kv {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSummary, "A", "A", 24)
}

func writeSweep(f *excelize.File, rows []Row) error {
	if _, err := f.NewSheet(SheetSweep); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetSweep, "A1", &sweepHeader); err != nil {
		return err
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := []any{r.Density, r.EE, r.M, r.K, r.SNR, r.Beta, r.BSDensity, r.Feasible, r.MISO, r.MIMO, r.AreaPower, r.AreaRate, r.TxShare}
		if err := f.SetSheetRow(SheetSweep, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}

func writeGrid(f *excelize.File, g *search.Grid) error {
	if _, err := f.NewSheet(SheetGrid); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetGrid, "A1", fmt.Sprintf("EE (bit/J) at %g UE/km²; rows M, columns K", g.Density)); err != nil {
		return err
	}

	mMax, kMax := g.EE.Dims()
	header := make([]any, kMax+1)
	header[0] = "M \\ K"
	for k := 1; k <= kMax; k++ {
		header[k] = k
	}
	if err := f.SetSheetRow(SheetGrid, "A2", &header); err != nil {
		return err
	}
	for m := 1; m <= mMax; m++ {
		vals := make([]any, kMax+1)
		vals[0] = m
		for k := 1; k <= kMax; k++ {
			vals[k] = g.EE.At(m-1, k-1)
		}
		cell, _ := excelize.CoordinatesToCellName(1, m+2)
		if err := f.SetSheetRow(SheetGrid, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}
