package spectrum

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidShape indicates that input data could not be interpreted as an
// (N,2) table of (wavenumber, intensity) rows with N >= 1.
var ErrInvalidShape = errors.New("spectrum: input must be an (N,2) table of wavenumber, intensity rows")

// Point is a single spectral sample: a wavenumber (typically cm^-1) and the
// measured intensity at that wavenumber.
type Point struct {
	Wavenumber float64
	Intensity  float64
}

// Spectrum is an ordered sequence of spectral samples. Wavenumbers are
// expected to be monotonically increasing, but nothing here depends on their
// spacing; all windowed processing is index-based.
type Spectrum []Point

// Len returns the number of samples.
func (s Spectrum) Len() int {
	return len(s)
}

// Wavenumbers returns a copy of the wavenumber column.
func (s Spectrum) Wavenumbers() []float64 {
	x := make([]float64, len(s))
	for i, p := range s {
		x[i] = p.Wavenumber
	}
	return x
}

// Intensities returns a copy of the intensity column.
func (s Spectrum) Intensities() []float64 {
	y := make([]float64, len(s))
	for i, p := range s {
		y[i] = p.Intensity
	}
	return y
}

// Clone returns a deep copy of the spectrum.
func (s Spectrum) Clone() Spectrum {
	out := make(Spectrum, len(s))
	copy(out, s)
	return out
}

// WithIntensities returns a new spectrum with the same wavenumber column and
// the given intensity column. The replacement column must match the spectrum
// length exactly.
func (s Spectrum) WithIntensities(y []float64) (Spectrum, error) {
	if len(y) != len(s) {
		return nil, fmt.Errorf("spectrum: intensity column length %d does not match %d samples", len(y), len(s))
	}

	out := make(Spectrum, len(s))
	for i, p := range s {
		out[i] = Point{Wavenumber: p.Wavenumber, Intensity: y[i]}
	}
	return out, nil
}

// Summary holds basic statistics of an intensity column.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Stats computes summary statistics of the intensity column using gonum.
// A zero-length spectrum yields a zero Summary.
func (s Spectrum) Stats() Summary {
	if len(s) == 0 {
		return Summary{}
	}

	y := s.Intensities()
	mean, std := stat.MeanStdDev(y, nil)

	return Summary{
		Min:    floats.Min(y),
		Max:    floats.Max(y),
		Mean:   mean,
		StdDev: std,
	}
}
