package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Drsuh/maximal-EE/pkg/config"
	"github.com/Drsuh/maximal-EE/pkg/util"
)

// bind maps config keys to flags so that viper resolves flag > env > file.
func (a *app) bind(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", name, err))
		}
	}
}

// applyOverrides copies every key set by a flag or MAXEE_* variable onto c.
func applyOverrides(v *viper.Viper, c *config.Config) error {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flt := func(key string, dst *float64) {
		if v.IsSet(key) {
			*dst = v.GetFloat64(key)
		}
	}

	str("log_level", &c.LogLevel)

	flt("system.target_rate", &c.System.TargetRate)
	flt("system.coherence_block", &c.System.Tau)
	flt("system.alpha", &c.System.Alpha)

	num("search.m_max", &c.Search.MMax)
	num("search.k_max", &c.Search.KMax)
	flt("search.snr_upper", &c.Search.SNRUpper)
	str("search.optimizer", &c.Search.Optimizer)
	if v.IsSet("search.parallel") {
		c.Search.Parallel = v.GetBool("search.parallel")
	}

	flt("sweep.density_min_exp", &c.Sweep.DensityMinExp)
	flt("sweep.density_max_exp", &c.Sweep.DensityMaxExp)
	num("sweep.points", &c.Sweep.Points)
	num("sweep.workers", &c.Sweep.Workers)
	num("sweep.progress_every", &c.Sweep.ProgressEvery)
	if v.IsSet("sweep.densities") {
		d, err := util.ParseFloats(v.GetString("sweep.densities"))
		if err != nil {
			return fmt.Errorf("sweep.densities: %w", err)
		}
		c.Sweep.Densities = d
	}

	str("output.csv", &c.Output.CSV)
	str("output.xlsx", &c.Output.XLSX)
	str("output.json", &c.Output.JSON)
	str("output.html", &c.Output.HTML)
	str("output.figure_dir", &c.Output.FigureDir)
	return nil
}
