// Package dmrio reads the packed numpy arrays of the COBE-DMR data
// set and writes sweep results in the same format. All shape checks
// happen at load time, before any likelihood evaluation begins.
package dmrio

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"cmblike"
)

const mapCols = 5 // x, y, z, temperature, rms

// LoadSkyMap reads an N x 5 .npy map file with columns x, y, z,
// temperature and noise rms.
func LoadSkyMap(path string) (*cmblike.SkyMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("dmrio: %s: %w", path, err)
	}
	shape := r.Header.Descr.Shape
	if len(shape) != 2 || shape[1] != mapCols {
		return nil, fmt.Errorf("dmrio: %s: map shape %v, want (N, %d)", path, shape, mapCols)
	}
	var m mat.Dense
	if err := r.Read(&m); err != nil {
		return nil, fmt.Errorf("dmrio: %s: %w", path, err)
	}
	n := shape[0]
	sm := &cmblike.SkyMap{
		X:   column(&m, 0, n),
		Y:   column(&m, 1, n),
		Z:   column(&m, 2, n),
		T:   column(&m, 3, n),
		RMS: column(&m, 4, n),
	}
	return sm, sm.Validate()
}

func column(m *mat.Dense, j, n int) []float64 {
	return mat.Col(make([]float64, n), j, m)
}

// LoadSeq reads a one-dimensional .npy array of exactly want values,
// e.g. a beam or pixel window of length lmax+1.
func LoadSeq(path string, want int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("dmrio: %s: %w", path, err)
	}
	shape := r.Header.Descr.Shape
	if len(shape) != 1 || shape[0] != want {
		return nil, fmt.Errorf("dmrio: %s: shape %v, want (%d)", path, shape, want)
	}
	var data []float64
	if err := r.Read(&data); err != nil {
		return nil, fmt.Errorf("dmrio: %s: %w", path, err)
	}
	return data, nil
}

// LoadGrid reads a two-dimensional .npy result matrix.
func LoadGrid(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("dmrio: %s: %w", path, err)
	}
	if shape := r.Header.Descr.Shape; len(shape) != 2 {
		return nil, fmt.Errorf("dmrio: %s: shape %v, want a 2-d grid", path, shape)
	}
	var m mat.Dense
	if err := r.Read(&m); err != nil {
		return nil, fmt.Errorf("dmrio: %s: %w", path, err)
	}
	return &m, nil
}

// WriteGrid stores a sweep result matrix as a 2-d .npy file.
func WriteGrid(path string, grid *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := npyio.Write(f, grid); err != nil {
		f.Close()
		return fmt.Errorf("dmrio: %s: %w", path, err)
	}
	return f.Close()
}
