package main

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Drsuh/maximal-EE/pkg/config"
)

// app carries state shared by all subcommands.
type app struct {
	v       *viper.Viper
	cfgPath string
	log     *logrus.Logger
	out     io.Writer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("maximal-ee failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}
	a.v.SetEnvPrefix("MAXEE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "maximal-ee",
		Short: "Energy-efficiency optimal cellular network design",
		Long: `maximal-ee searches, for each user density, the number of BS antennas (M),
the number of users per cell (K) and the transmit SNR that maximize the
energy efficiency (bit/J) of a multi-cell massive MIMO network, subject to
a per-user rate target and pilot reuse feasibility.

Settings come from a YAML file (--config), overridden by MAXEE_* environment
variables, overridden by flags. For example MAXEE_SEARCH_M_MAX=100 or
MAXEE_LOG_LEVEL=debug.

Examples:
  maximal-ee sweep --points 50 --csv out/sweep.csv --figures out/
  maximal-ee point --density 1000 --xlsx out/grid.xlsx
  maximal-ee config > maximal-ee.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.out = cmd.OutOrStdout()
			a.log.SetOutput(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file (defaults apply when empty)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Int("m-max", 0, "largest number of BS antennas searched")
	pf.Int("k-max", 0, "largest number of users per cell searched")
	pf.Float64("snr-upper", 0, "upper bound of the SNR search")
	pf.String("optimizer", "", "scalar maximizer: brent or golden")
	pf.Bool("parallel", false, "evaluate the K columns of each grid concurrently")
	pf.Float64("rate", 0, "target spectral efficiency per user (bit/s/Hz)")
	pf.Float64("tau", 0, "coherence block length (symbols)")
	pf.Float64("alpha", 0, "pathloss exponent")

	a.bind(pf, map[string]string{
		"log_level":              "log-level",
		"search.m_max":           "m-max",
		"search.k_max":           "k-max",
		"search.snr_upper":       "snr-upper",
		"search.optimizer":       "optimizer",
		"search.parallel":        "parallel",
		"system.target_rate":     "rate",
		"system.coherence_block": "tau",
		"system.alpha":           "alpha",
	})

	root.AddCommand(
		newSweepCmd(a),
		newPointCmd(a),
		newConfigCmd(a),
		newPlotCmd(a),
	)
	return root
}

// loadConfig reads the YAML file, applies env and flag overrides and validates.
func (a *app) loadConfig() (*config.Config, error) {
	c, err := config.LoadUnchecked(a.cfgPath)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(a.v, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	a.setupLogger(c.LogLevel)
	a.log.WithFields(logrus.Fields{
		"config": a.cfgPath,
		"mmax":   c.Search.MMax,
		"kmax":   c.Search.KMax,
	}).Debug("configuration loaded")
	return c, nil
}

func (a *app) setupLogger(level string) {
	a.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	a.log.SetLevel(lvl)
}
