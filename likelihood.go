// Package cmblike evaluates the Gaussian likelihood of a CMB sky map
// against a two-parameter model power spectrum.
package cmblike

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

const badDataLength = "cmblike: data and covariance dimension mismatch"

// ErrNotPosDef reports a combined covariance matrix that is not
// positive definite, so the Gaussian likelihood is undefined there.
// During a grid sweep this marks an invalid parameter point rather
// than a fatal condition.
var ErrNotPosDef = errors.New("cmblike: covariance matrix not positive definite")

// LnLikelihood returns -2 ln L, up to an additive constant, for the
// data vector under a zero-mean Gaussian with the given covariance:
//
//	d^T C^-1 d + ln det C
//
// The covariance is Cholesky-factored as C = L L^T; the quadratic
// form comes from the triangular solve and the log-determinant from
// the factor, which carries the factor of two for det C = det(L)^2.
// Returns +Inf and ErrNotPosDef when the factorization fails.
func LnLikelihood(data []float64, cov *mat.SymDense) (float64, error) {
	n, _ := cov.Dims()
	if len(data) != n {
		panic(badDataLength)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return math.Inf(1), ErrNotPosDef
	}
	d := mat.NewVecDense(n, data)
	alpha := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(alpha, d); err != nil {
		return math.Inf(1), ErrNotPosDef
	}
	return mat.Dot(d, alpha) + chol.LogDet(), nil
}
