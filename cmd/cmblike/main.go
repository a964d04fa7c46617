// Command cmblike runs a (Q, n) likelihood grid sweep over a CMB sky
// map and plots the resulting -2 ln L surface.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cmblike"
	"cmblike/internal/dmrio"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "cmblike",
		Short:        "CMB likelihood grid evaluation for the COBE-DMR data set",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "params", "p", "params.yaml", "parameter file")
	root.AddCommand(newSweepCmd(&cfgPath), newPlotCmd(&cfgPath))
	return root
}

func newSweepCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "evaluate -2 ln L over the (Q, n) grid and store the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*cfgPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runSweep(cfg, logger)
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runSweep(cfg *Config, logger *zap.Logger) error {
	m, err := dmrio.LoadSkyMap(cfg.expand(cfg.CMBFile))
	if err != nil {
		return err
	}
	beam, err := dmrio.LoadSeq(cfg.expand(cfg.BeamFile), cfg.Lmax+1)
	if err != nil {
		return err
	}
	pixwin, err := dmrio.LoadSeq(cfg.expand(cfg.PixwinFile), cfg.Lmax+1)
	if err != nil {
		return err
	}
	ev, err := cmblike.NewEvaluator(m, beam, pixwin, cfg.Lmax, cfg.ForegroundScale)
	if err != nil {
		return err
	}

	grid := cfg.Grid()
	logger.Info("sweep start",
		zap.Int("pixels", m.N()),
		zap.Int("lmax", cfg.Lmax),
		zap.Int("band", cfg.Band),
		zap.Int("points", grid.QPoints*grid.NPoints),
		zap.Int("workers", cfg.Workers))

	start := time.Now()
	res, err := ev.Sweep(grid, cmblike.SweepOpts{Workers: cfg.Workers, Logger: logger})
	if err != nil {
		return err
	}
	q, n, lnL := cmblike.MinPoint(res, grid)
	logger.Info("sweep done",
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("bestQ", q),
		zap.Float64("bestN", n),
		zap.Float64("lnL", lnL))

	return dmrio.WriteGrid(cfg.expand(cfg.ResultFile), res)
}
