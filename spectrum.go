package cmblike

import (
	"fmt"
	"math"
)

// denomEps guards the spectrum recursion against a vanishing
// denominator for spectral indices near 2l+5.
const denomEps = 1e-12

// ModelSpectrum returns the model power spectrum C_l for l in
// [0, lmax], normalized to the quadrupole amplitude q and shaped by
// the spectral index n. Monopole and dipole carry no signal: C[0]
// and C[1] are zero. The quadrupole is C[2] = (4pi/5) q^2 and higher
// multipoles follow the Sachs-Wolfe recursion
//
//	C[l+1] = C[l] * (2l+n-1) / (2l+5-n)
//
// evaluated in increasing l since each term depends on the previous.
// An error is returned when q or lmax is out of range, or when n
// makes the recursion undefined or drives the power negative.
func ModelSpectrum(q, n float64, lmax int) ([]float64, error) {
	if lmax < 2 {
		return nil, fmt.Errorf("cmblike: lmax %d below quadrupole", lmax)
	}
	if !(q > 0) {
		return nil, fmt.Errorf("cmblike: non-positive amplitude Q=%v", q)
	}
	cl := make([]float64, lmax+1)
	cl[2] = 4 * math.Pi / 5 * q * q
	for l := 2; l < lmax; l++ {
		den := float64(2*l+5) - n
		if math.Abs(den) <= denomEps {
			return nil, fmt.Errorf("cmblike: spectrum recursion undefined at l=%d for spectral index n=%v", l, n)
		}
		next := cl[l] * (float64(2*l-1) + n) / den
		if next < 0 {
			return nil, fmt.Errorf("cmblike: negative power at l=%d for spectral index n=%v", l+1, n)
		}
		cl[l+1] = next
	}
	return cl, nil
}
