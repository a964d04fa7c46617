package cmblike

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Grid describes the (Q, n) parameter grid of a likelihood sweep.
// Each axis needs at least two points.
type Grid struct {
	QMin, QMax float64
	QPoints    int
	NMin, NMax float64
	NPoints    int
}

// QAxis returns the amplitude values of the grid.
func (g Grid) QAxis() []float64 {
	return floats.Span(make([]float64, g.QPoints), g.QMin, g.QMax)
}

// NAxis returns the spectral index values of the grid.
func (g Grid) NAxis() []float64 {
	return floats.Span(make([]float64, g.NPoints), g.NMin, g.NMax)
}

// An Evaluator computes -2 ln L for model parameters against one
// fixed dataset. The Legendre tensor, beam, pixel window and the
// parameter-independent noise and foreground covariances are computed
// once at construction and only read afterwards, so a single
// Evaluator may be shared by concurrent evaluations.
type Evaluator struct {
	lmax   int
	data   []float64
	beam   []float64
	pixwin []float64
	pl     []*mat.SymDense
	fixed  *mat.SymDense // noise + foreground
}

// NewEvaluator precomputes the dataset-dependent state for a sweep.
// beam and pixwin must have length lmax+1. fgScale sets the
// monopole/dipole suppression variance, see ForegroundCov.
func NewEvaluator(m *SkyMap, beam, pixwin []float64, lmax int, fgScale float64) (*Evaluator, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if lmax < 2 {
		return nil, fmt.Errorf("cmblike: lmax %d below quadrupole", lmax)
	}
	if len(beam) != lmax+1 || len(pixwin) != lmax+1 {
		return nil, fmt.Errorf("cmblike: beam length %d and pixel window length %d, want %d",
			len(beam), len(pixwin), lmax+1)
	}
	fixed := NoiseCov(m.RMS)
	fixed.AddSym(fixed, ForegroundCov(m.X, m.Y, m.Z, fgScale))
	return &Evaluator{
		lmax:   lmax,
		data:   m.T,
		beam:   beam,
		pixwin: pixwin,
		pl:     LegendreTensor(lmax, m.X, m.Y, m.Z),
		fixed:  fixed,
	}, nil
}

// Eval returns -2 ln L at a single (Q, n) point. The model spectrum
// and signal covariance are rebuilt per call; everything else is
// reused from construction.
func (e *Evaluator) Eval(q, n float64) (float64, error) {
	cl, err := ModelSpectrum(q, n, e.lmax)
	if err != nil {
		return math.Inf(1), err
	}
	cov := SignalCov(cl, e.beam, e.pixwin, e.pl)
	cov.AddSym(cov, e.fixed)
	return LnLikelihood(e.data, cov)
}

// SweepOpts controls a grid sweep.
type SweepOpts struct {
	Workers int         // concurrent rows; values below 2 mean serial
	Logger  *zap.Logger // per-point debug logging; nil disables
}

// Sweep evaluates every point of the grid and returns a QPoints by
// NPoints matrix of -2 ln L values, rows following the Q axis. A
// point where the combined covariance is not positive definite is
// recorded as +Inf and the sweep continues; any other evaluation
// error aborts the sweep, since it indicates a setup bug rather than
// a degenerate parameter point.
func (e *Evaluator) Sweep(grid Grid, opts SweepOpts) (*mat.Dense, error) {
	if grid.QPoints < 2 || grid.NPoints < 2 {
		return nil, fmt.Errorf("cmblike: grid %dx%d needs at least 2 points per axis",
			grid.QPoints, grid.NPoints)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	qs := grid.QAxis()
	ns := grid.NAxis()
	res := mat.NewDense(grid.QPoints, grid.NPoints, nil)

	var eg errgroup.Group
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	eg.SetLimit(workers)
	for i, q := range qs {
		i, q := i, q
		eg.Go(func() error {
			for j, n := range ns {
				lnL, err := e.Eval(q, n)
				switch {
				case errors.Is(err, ErrNotPosDef):
					log.Warn("covariance not positive definite",
						zap.Float64("Q", q), zap.Float64("n", n))
					lnL = math.Inf(1)
				case err != nil:
					return fmt.Errorf("cmblike: grid point Q=%v n=%v: %w", q, n, err)
				default:
					log.Debug("grid point",
						zap.Float64("Q", q), zap.Float64("n", n), zap.Float64("lnL", lnL))
				}
				res.Set(i, j, lnL)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// MinPoint returns the grid coordinates and value of the smallest
// entry of a sweep result, i.e. the best-fit (Q, n).
func MinPoint(res *mat.Dense, grid Grid) (q, n, lnL float64) {
	r, c := res.Dims()
	lnL = math.Inf(1)
	qi, ni := 0, 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := res.At(i, j); v < lnL {
				lnL, qi, ni = v, i, j
			}
		}
	}
	return grid.QAxis()[qi], grid.NAxis()[ni], lnL
}
