package cmblike

import (
	"gonum.org/v1/gonum/mat"
)

const (
	badCoordLength = "cmblike: coordinate length mismatch"
	negativeLmax   = "cmblike: negative lmax"
)

// CosineMatrix returns the matrix of pairwise angular cosines between
// pixel positions: entry (i, j) is the dot product of unit vectors i
// and j. The diagonal is 1 for unit-norm inputs.
func CosineMatrix(x, y, z []float64) *mat.SymDense {
	n := len(x)
	if len(y) != n || len(z) != n {
		panic(badCoordLength)
	}
	c := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c.SetSym(i, j, x[i]*x[j]+y[i]*y[j]+z[i]*z[j])
		}
	}
	return c
}

// LegendreTensor evaluates the Legendre polynomials P_0 through
// P_lmax at every pairwise cosine of the pixel set, one symmetric
// matrix per degree. Slice 0 is all ones and slice 1 is the cosine
// matrix itself. Degrees are built entrywise with the three-term
// recurrence
//
//	(l+1) P_{l+1}(x) = (2l+1) x P_l(x) - l P_{l-1}(x)
//
// The tensor depends only on the pixel geometry, so it is computed
// once per dataset and shared read-only across evaluations.
func LegendreTensor(lmax int, x, y, z []float64) []*mat.SymDense {
	if lmax < 0 {
		panic(negativeLmax)
	}
	cos := CosineMatrix(x, y, z)
	n, _ := cos.Dims()
	pl := make([]*mat.SymDense, lmax+1)
	for l := range pl {
		pl[l] = mat.NewSymDense(n, nil)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := cos.At(i, j)
			pl[0].SetSym(i, j, 1)
			if lmax == 0 {
				continue
			}
			pl[1].SetSym(i, j, c)
			pm, p := 1.0, c // P_{l-1} and P_l at c
			for l := 1; l < lmax; l++ {
				pm, p = p, (float64(2*l+1)*c*p-float64(l)*pm)/float64(l+1)
				pl[l+1].SetSym(i, j, p)
			}
		}
	}
	return pl
}
