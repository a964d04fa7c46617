package cmblike

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	badRMS          = "cmblike: negative or non-finite rms"
	badWeightLength = "cmblike: spectrum, beam and pixel window length mismatch"
	badTensorLength = "cmblike: legendre tensor and spectrum length mismatch"
)

// NoiseCov returns the diagonal noise covariance built from per-pixel
// standard deviations: entry (i, i) is rms[i] squared. A zero rms is
// a noiseless pixel and is accepted as-is.
func NoiseCov(rms []float64) *mat.SymDense {
	cov := mat.NewSymDense(len(rms), nil)
	for i, s := range rms {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			panic(badRMS)
		}
		cov.SetSym(i, i, s*s)
	}
	return cov
}

// ForegroundCov returns a covariance term assigning variance scale to
// the monopole and to a dipole along each coordinate axis, so the
// likelihood marginalizes over any monopole or dipole contamination
// in the map:
//
//	F = scale * (1 + x x^T + y y^T + z z^T)
//
// scale must dominate the signal and noise variances for the
// suppression to be effective; it is a tuning knob, not a derived
// quantity. The result has rank at most 4.
func ForegroundCov(x, y, z []float64, scale float64) *mat.SymDense {
	n := len(x)
	if len(y) != n || len(z) != n {
		panic(badCoordLength)
	}
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov.SetSym(i, j, scale*(1+x[i]*x[j]+y[i]*y[j]+z[i]*z[j]))
		}
	}
	return cov
}

// SignalCov contracts the model spectrum against the Legendre tensor,
// attenuating each multipole by the instrument beam and the pixel
// window function:
//
//	S_ij = 1/(4pi) sum_l (2l+1) beam_l^2 pixwin_l^2 C_l P_l(cos theta_ij)
//
// cl, beam and pixwin must all have length lmax+1, aligned by
// multipole with the tensor from LegendreTensor.
func SignalCov(cl, beam, pixwin []float64, pl []*mat.SymDense) *mat.SymDense {
	if len(beam) != len(cl) || len(pixwin) != len(cl) {
		panic(badWeightLength)
	}
	if len(pl) != len(cl) || len(pl) == 0 {
		panic(badTensorLength)
	}
	n, _ := pl[0].Dims()
	cov := mat.NewSymDense(n, nil)
	tmp := mat.NewSymDense(n, nil)
	for l, c := range cl {
		w := float64(2*l+1) * beam[l] * beam[l] * pixwin[l] * pixwin[l] * c / (4 * math.Pi)
		if w == 0 {
			continue // monopole and dipole, typically
		}
		tmp.ScaleSym(w, pl[l])
		cov.AddSym(cov, tmp)
	}
	return cov
}
