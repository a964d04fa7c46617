package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"cmblike"
	"cmblike/internal/dmrio"
)

func newPlotCmd(cfgPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "render the stored -2 ln L grid as a heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.expand(cfg.PlotFile)
			}
			if out == "" {
				return fmt.Errorf("no plot output file; set --out or plotfile")
			}
			return runPlot(cfg, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image file (overrides plotfile)")
	return cmd
}

func runPlot(cfg *Config, out string) error {
	res, err := dmrio.LoadGrid(cfg.expand(cfg.ResultFile))
	if err != nil {
		return err
	}
	r, c := res.Dims()
	if r != cfg.QPoints || c != cfg.NPoints {
		return fmt.Errorf("%s: result grid %dx%d does not match configured %dx%d",
			cfg.expand(cfg.ResultFile), r, c, cfg.QPoints, cfg.NPoints)
	}
	grid := cfg.Grid()

	h := plotter.NewHeatMap(lnLGrid{
		res: res,
		qs:  grid.QAxis(),
		ns:  grid.NAxis(),
	}, palette.Heat(16, 1))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("-2 ln L, %d GHz", cfg.Band)
	p.X.Label.Text = "spectral index n"
	p.Y.Label.Text = "amplitude Q"
	p.Add(h)

	q, n, lnL := cmblike.MinPoint(res, grid)
	if !math.IsInf(lnL, 1) {
		best, err := plotter.NewScatter(plotter.XYs{{X: n, Y: q}})
		if err != nil {
			return err
		}
		p.Add(best)
	}
	return p.Save(6*vg.Inch, 5*vg.Inch, out)
}

// lnLGrid adapts a sweep result to plotter.GridXYZ, spectral index on
// the x axis and amplitude on y. Points marked +Inf by the sweep are
// blanked out.
type lnLGrid struct {
	res    *mat.Dense
	qs, ns []float64
}

func (g lnLGrid) Dims() (c, r int) { return len(g.ns), len(g.qs) }
func (g lnLGrid) X(c int) float64  { return g.ns[c] }
func (g lnLGrid) Y(r int) float64  { return g.qs[r] }

func (g lnLGrid) Z(c, r int) float64 {
	v := g.res.At(r, c)
	if math.IsInf(v, 1) {
		return math.NaN()
	}
	return v
}
