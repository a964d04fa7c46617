package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testParams = `
debug: true
nside: 16
lmax: 47
band: 53
q_min: 1.0
q_max: 50.0
q_numpoint: 40
n_min: -1.0
n_max: 3.0
n_numpoint: 40
cmbfile: data/cobe_dmr_{band}GHz_n{nside}.npy
beamfile: data/cobe_dmr_beam.npy
pixwinfile: data/pixwin_n{nside}.npy
resultfile: cobe_dmr_{band}ghz_lnL.npy
`

func writeParams(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeParams(t, testParams))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 47, cfg.Lmax)
	assert.Equal(t, 53, cfg.Band)
	assert.Equal(t, 40, cfg.QPoints)

	// Defaults not present in the file.
	assert.Equal(t, 1000.0, cfg.ForegroundScale)
	assert.Equal(t, 1, cfg.Workers)

	grid := cfg.Grid()
	assert.Equal(t, 1.0, grid.QMin)
	assert.Equal(t, 50.0, grid.QMax)
	assert.Equal(t, 40, grid.NPoints)
}

func TestConfigExpand(t *testing.T) {
	cfg, err := LoadConfig(writeParams(t, testParams))
	require.NoError(t, err)

	assert.Equal(t, "data/cobe_dmr_53GHz_n16.npy", cfg.expand(cfg.CMBFile))
	assert.Equal(t, "data/pixwin_n16.npy", cfg.expand(cfg.PixwinFile))
	assert.Equal(t, "cobe_dmr_53ghz_lnL.npy", cfg.expand(cfg.ResultFile))
	assert.Equal(t, "data/cobe_dmr_beam.npy", cfg.expand(cfg.BeamFile))
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"lmax below quadrupole": func(c *Config) { c.Lmax = 1 },
		"empty grid":            func(c *Config) { c.QPoints = 0 },
		"non-positive q_min":    func(c *Config) { c.QMin = 0 },
		"bounds out of order":   func(c *Config) { c.NMin = 5 },
		"missing file":          func(c *Config) { c.BeamFile = "" },
		"bad band":              func(c *Config) { c.Band = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(writeParams(t, testParams))
			require.NoError(t, err)
			mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
