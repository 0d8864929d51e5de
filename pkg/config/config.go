package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Drsuh/maximal-EE/pkg/efficiency"
	"github.com/Drsuh/maximal-EE/pkg/optim"
	"github.com/Drsuh/maximal-EE/pkg/search"
	"github.com/Drsuh/maximal-EE/pkg/sweep"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	LogLevel string            `yaml:"log_level"`
	System   efficiency.Config `yaml:"system"`
	Search   SearchConfig      `yaml:"search"`
	Sweep    SweepConfig       `yaml:"sweep"`
	Output   OutputConfig      `yaml:"output"`
}

type SearchConfig struct {
	MMax      int              `yaml:"m_max"`
	KMax      int              `yaml:"k_max"`
	SNRUpper  float64          `yaml:"snr_upper"`
	Optimizer string           `yaml:"optimizer"`
	MISO      search.Reference `yaml:"miso"`
	MIMO      search.Reference `yaml:"mimo"`
	Parallel  bool             `yaml:"parallel"`
}

// SweepConfig describes the density grid. An explicit Densities list wins
// over the log-spaced range.
type SweepConfig struct {
	DensityMinExp float64   `yaml:"density_min_exp"`
	DensityMaxExp float64   `yaml:"density_max_exp"`
	Points        int       `yaml:"points"`
	Densities     []float64 `yaml:"densities,omitempty"`
	Workers       int       `yaml:"workers"`
	ProgressEvery int       `yaml:"progress_every"`
}

// OutputConfig names export targets; empty paths are skipped.
type OutputConfig struct {
	CSV       string `yaml:"csv"`
	XLSX      string `yaml:"xlsx"`
	JSON      string `yaml:"json"`
	HTML      string `yaml:"html"`
	FigureDir string `yaml:"figure_dir"`
}

// Default returns the reference scenario: 200 densities over 10^0..10^5,
// M up to 300 and K up to 40.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		System:   efficiency.DefaultConfig(),
		Search: SearchConfig{
			MMax:      300,
			KMax:      40,
			SNRUpper:  search.DefaultUpper,
			Optimizer: string(optim.KindBrent),
			MISO:      search.DefaultMISO,
			MIMO:      search.DefaultMIMO,
		},
		Sweep: SweepConfig{
			DensityMinExp: 0,
			DensityMaxExp: 5,
			Points:        200,
			ProgressEvery: 10,
		},
	}
}

// Load decodes path over Default() and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked decodes path over Default() without validating.
// Keys missing from the file keep their default values.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Validate reports every invalid field at once; each error wraps ErrInvalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalid)
	}
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	s := c.System
	if !(s.Alpha > 2) {
		add("system.alpha must be > 2, got %g", s.Alpha)
	}
	if !(s.PropLossNoise > 0) {
		add("system.prop_loss_noise must be > 0, got %g", s.PropLossNoise)
	}
	if !(s.Tau > 0) {
		add("system.coherence_block must be > 0, got %g", s.Tau)
	}
	if !(s.Eta > 0 && s.Eta <= 1) {
		add("system.amplifier_efficiency must be in (0, 1], got %g", s.Eta)
	}
	if !(s.Epsilon >= 0 && s.Epsilon < 1) {
		add("system.impairment must be in [0, 1), got %g", s.Epsilon)
	}
	if !(s.SymbolTime > 0) {
		add("system.symbol_time must be > 0, got %g", s.SymbolTime)
	}
	if !(s.TargetRate > 0) {
		add("system.target_rate must be > 0, got %g", s.TargetRate)
	}
	for name, v := range map[string]float64{
		"static_power":      s.C0,
		"power_per_user":    s.C1,
		"power_per_antenna": s.D0,
		"signal_processing": s.D1,
		"coding_backhaul":   s.A,
	} {
		if !(v >= 0) {
			add("system.%s must be >= 0, got %g", name, v)
		}
	}

	if c.Search.MMax < 1 || c.Search.KMax < 1 {
		add("search.m_max and search.k_max must be >= 1, got %d and %d", c.Search.MMax, c.Search.KMax)
	}
	if !(c.Search.SNRUpper > 0) {
		add("search.snr_upper must be > 0, got %g", c.Search.SNRUpper)
	}
	if _, err := optim.New(c.Search.Optimizer); err != nil {
		add("search.optimizer: %v", err)
	}
	for _, ref := range []search.Reference{c.Search.MISO, c.Search.MIMO} {
		if ref.M < 1 || ref.K < 1 {
			add("search reference %q needs m, k >= 1, got (%d, %d)", ref.Name, ref.M, ref.K)
		}
	}

	if len(c.Sweep.Densities) == 0 {
		if c.Sweep.Points < 1 {
			add("sweep.points must be >= 1, got %d", c.Sweep.Points)
		}
		if c.Sweep.DensityMaxExp < c.Sweep.DensityMinExp {
			add("sweep.density_max_exp %g < density_min_exp %g", c.Sweep.DensityMaxExp, c.Sweep.DensityMinExp)
		}
	}
	for i, d := range c.Sweep.Densities {
		if !(d > 0) || math.IsInf(d, 0) {
			add("sweep.densities[%d] must be positive and finite, got %g", i, d)
		}
	}
	if c.Sweep.ProgressEvery < 0 {
		add("sweep.progress_every must be >= 0, got %d", c.Sweep.ProgressEvery)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		add("log_level: %v", err)
	}
	return errors.Join(errs...)
}

// Model builds the EE model from the system section.
func (c *Config) Model() efficiency.Model {
	sys := c.System
	return efficiency.New(&sys)
}

// Searcher builds a grid searcher for the search section.
func (c *Config) Searcher(lg logrus.FieldLogger) (*search.Searcher, error) {
	mx, err := optim.New(c.Search.Optimizer)
	if err != nil {
		return nil, err
	}
	return search.New(c.Model(), search.Options{
		MMax:      c.Search.MMax,
		KMax:      c.Search.KMax,
		Upper:     c.Search.SNRUpper,
		Maximizer: mx,
		MISO:      c.Search.MISO,
		MIMO:      c.Search.MIMO,
		Parallel:  c.Search.Parallel,
		Logger:    lg,
	})
}

// Densities resolves the user densities to sweep.
func (c *Config) Densities() ([]float64, error) {
	if len(c.Sweep.Densities) > 0 {
		return append([]float64(nil), c.Sweep.Densities...), nil
	}
	return sweep.Densities(c.Sweep.DensityMinExp, c.Sweep.DensityMaxExp, c.Sweep.Points)
}

// SweepOptions returns the execution options for sweep.Run.
func (c *Config) SweepOptions(lg logrus.FieldLogger) sweep.Options {
	return sweep.Options{
		Workers:       c.Sweep.Workers,
		ProgressEvery: c.Sweep.ProgressEvery,
		Logger:        lg,
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
