package cmblike

import (
	"errors"
	"fmt"
)

// SkyMap holds a pixelized sky observation: unit-vector pixel
// positions, a measured temperature and a noise standard deviation
// per pixel. Positions are assumed unit-norm; that is a contract of
// the input data, not re-checked here.
type SkyMap struct {
	X, Y, Z []float64 // pixel center unit vectors
	T       []float64 // measured temperature per pixel
	RMS     []float64 // noise standard deviation per pixel
}

// N returns the number of pixels.
func (m *SkyMap) N() int { return len(m.T) }

// Validate checks that the pixel arrays agree in length.
func (m *SkyMap) Validate() error {
	n := len(m.T)
	if n == 0 {
		return errors.New("cmblike: empty sky map")
	}
	if len(m.X) != n || len(m.Y) != n || len(m.Z) != n {
		return fmt.Errorf("cmblike: coordinate lengths (%d, %d, %d) do not match %d pixels",
			len(m.X), len(m.Y), len(m.Z), n)
	}
	if len(m.RMS) != n {
		return fmt.Errorf("cmblike: %d rms values for %d pixels", len(m.RMS), n)
	}
	return nil
}
