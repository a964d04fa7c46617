package cmblike

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// tetrahedron returns four unit vectors at the vertices of a regular
// tetrahedron; every pairwise cosine is -1/3.
func tetrahedron() (x, y, z []float64) {
	s := 1 / math.Sqrt(3)
	x = []float64{s, s, -s, -s}
	y = []float64{s, -s, s, -s}
	z = []float64{s, -s, -s, s}
	return x, y, z
}

func TestCosineMatrix(t *testing.T) {
	x, y, z := tetrahedron()
	cos := CosineMatrix(x, y, z)
	n, _ := cos.Dims()
	require.Equal(t, 4, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := -1.0 / 3
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, cos.At(i, j), 1e-15, "cosine (%d, %d)", i, j)
		}
	}
}

func TestCosineMatrixLengthMismatch(t *testing.T) {
	assert.PanicsWithValue(t, badCoordLength, func() {
		CosineMatrix([]float64{1, 0}, []float64{0}, []float64{0, 0})
	})
}

func TestLegendreTensor(t *testing.T) {
	x, y, z := tetrahedron()
	const lmax = 4
	pl := LegendreTensor(lmax, x, y, z)
	require.Len(t, pl, lmax+1)

	n := len(x)
	ones := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			ones.SetSym(i, j, 1)
		}
	}
	assert.True(t, mat.Equal(pl[0], ones), "slice 0 must be all ones")
	assert.True(t, mat.Equal(pl[1], CosineMatrix(x, y, z)), "slice 1 must be the cosine matrix")

	// Direct polynomial evaluations against the recurrence.
	p2 := func(c float64) float64 { return (3*c*c - 1) / 2 }
	p3 := func(c float64) float64 { return (5*c*c*c - 3*c) / 2 }
	p4 := func(c float64) float64 { return (35*c*c*c*c - 30*c*c + 3) / 8 }
	cos := CosineMatrix(x, y, z)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := cos.At(i, j)
			assert.InDelta(t, p2(c), pl[2].At(i, j), 1e-14)
			assert.InDelta(t, p3(c), pl[3].At(i, j), 1e-14)
			assert.InDelta(t, p4(c), pl[4].At(i, j), 1e-14)
		}
	}

	// P_l(1) = 1 for every degree, so all diagonals are 1.
	for l := 0; l <= lmax; l++ {
		for i := 0; i < n; i++ {
			assert.InDelta(t, 1, pl[l].At(i, i), 1e-14, "diagonal at l=%d", l)
		}
	}
}

func TestLegendreTensorLmaxZero(t *testing.T) {
	x, y, z := tetrahedron()
	pl := LegendreTensor(0, x, y, z)
	require.Len(t, pl, 1)
	assert.InDelta(t, 1, pl[0].At(2, 3), 1e-15)
}
