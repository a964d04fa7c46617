package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"cmblike"
)

// Config is the run parameter file: map resolution, grid bounds and
// the input/output file set. File patterns may contain {band} and
// {nside} placeholders, filled from the corresponding fields, so one
// file selects between the frequency bands of the data set.
type Config struct {
	Debug bool `yaml:"debug"`
	NSide int  `yaml:"nside"`
	Lmax  int  `yaml:"lmax"`
	Band  int  `yaml:"band"` // observing frequency in GHz

	QMin    float64 `yaml:"q_min"`
	QMax    float64 `yaml:"q_max"`
	QPoints int     `yaml:"q_numpoint"`
	NMin    float64 `yaml:"n_min"`
	NMax    float64 `yaml:"n_max"`
	NPoints int     `yaml:"n_numpoint"`

	ForegroundScale float64 `yaml:"foreground_scale"`
	Workers         int     `yaml:"workers"`

	CMBFile    string `yaml:"cmbfile"`
	BeamFile   string `yaml:"beamfile"`
	PixwinFile string `yaml:"pixwinfile"`
	ResultFile string `yaml:"resultfile"`
	PlotFile   string `yaml:"plotfile"`
}

// LoadConfig reads and validates a YAML parameter file. The
// foreground scale defaults to 1000 and the worker count to 1.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{ForegroundScale: 1000, Workers: 1}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Lmax < 2 {
		return fmt.Errorf("lmax %d below quadrupole", c.Lmax)
	}
	if c.NSide < 1 {
		return fmt.Errorf("nside %d out of range", c.NSide)
	}
	if c.Band < 1 {
		return fmt.Errorf("band %d out of range", c.Band)
	}
	if c.QPoints < 2 || c.NPoints < 2 {
		return fmt.Errorf("grid %dx%d needs at least 2 points per axis", c.QPoints, c.NPoints)
	}
	if c.QMin <= 0 {
		return fmt.Errorf("q_min %v must be positive", c.QMin)
	}
	if c.QMax < c.QMin || c.NMax < c.NMin {
		return fmt.Errorf("grid bounds out of order")
	}
	for name, f := range map[string]string{
		"cmbfile":    c.CMBFile,
		"beamfile":   c.BeamFile,
		"pixwinfile": c.PixwinFile,
		"resultfile": c.ResultFile,
	} {
		if f == "" {
			return fmt.Errorf("missing %s", name)
		}
	}
	return nil
}

// expand substitutes the {band} and {nside} placeholders in a file
// pattern.
func (c *Config) expand(pattern string) string {
	s := strings.ReplaceAll(pattern, "{band}", strconv.Itoa(c.Band))
	return strings.ReplaceAll(s, "{nside}", strconv.Itoa(c.NSide))
}

// Grid returns the sweep grid described by the config.
func (c *Config) Grid() cmblike.Grid {
	return cmblike.Grid{
		QMin: c.QMin, QMax: c.QMax, QPoints: c.QPoints,
		NMin: c.NMin, NMax: c.NMax, NPoints: c.NPoints,
	}
}
