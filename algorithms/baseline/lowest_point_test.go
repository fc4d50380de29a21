package baseline

import (
	"errors"
	"math"
	"testing"

	"github.com/spectrakit/ramanbg/spectrum"
)

func makeSpectrum(y []float64) spectrum.Spectrum {
	s := make(spectrum.Spectrum, len(y))
	for i, v := range y {
		s[i] = spectrum.Point{Wavenumber: float64(i), Intensity: v}
	}
	return s
}

func TestNewEstimatorValidation(t *testing.T) {
	if _, err := NewEstimator(1); !errors.Is(err, ErrWindowTooSmall) {
		t.Fatalf("width 1: expected ErrWindowTooSmall, got %v", err)
	}
	if _, err := NewEstimator(0); !errors.Is(err, ErrWindowTooSmall) {
		t.Fatalf("width 0: expected ErrWindowTooSmall, got %v", err)
	}
	if _, err := NewEstimator(3); !errors.Is(err, ErrWindowOdd) {
		t.Fatalf("width 3: expected ErrWindowOdd, got %v", err)
	}
	est, err := NewEstimator(4)
	if err != nil {
		t.Fatalf("width 4: unexpected error %v", err)
	}
	if est.WindowWidth() != 4 {
		t.Fatalf("window width mismatch: got %d", est.WindowWidth())
	}
}

func TestSpikeSurvivesSubtraction(t *testing.T) {
	y := []float64{0, 0, 0, 0, 0, 10, 0, 0, 0, 0, 0}

	est, err := NewEstimator(4)
	if err != nil {
		t.Fatal(err)
	}
	clean := est.Subtract(y)

	if len(clean) != len(y) {
		t.Fatalf("length mismatch: got %d want %d", len(clean), len(y))
	}

	// The flat neighborhood around the spike is all zero, so the lowest
	// interpolation at index 5 is zero and the spike survives intact.
	if math.Abs(clean[5]-10) > 1e-12 {
		t.Fatalf("spike lost: clean[5] = %g, want 10", clean[5])
	}
	for i, v := range clean {
		if i == 5 {
			continue
		}
		if math.Abs(v) > 1e-12 {
			t.Fatalf("flat region not flat: clean[%d] = %g", i, v)
		}
	}
}

func TestLinearRampSubtractsToZero(t *testing.T) {
	y := make([]float64, 16)
	for i := range y {
		y[i] = float64(i)
	}

	est, err := NewEstimator(4)
	if err != nil {
		t.Fatal(err)
	}
	clean := est.Subtract(y)

	// Every interpolation between two points of a line reproduces the line
	// exactly, so the background equals the signal; edges subtract their own
	// value. Everything comes out zero.
	for i, v := range clean {
		if math.Abs(v) > 1e-12 {
			t.Fatalf("ramp residual at %d: %g", i, v)
		}
	}
}

func TestEdgePassThrough(t *testing.T) {
	y := []float64{4.5, -2, 7, 1.25, 9, 0.5, 3, -6, 8, 2, 5.5, -1}

	est, err := NewEstimator(6)
	if err != nil {
		t.Fatal(err)
	}
	bg := est.Estimate(y)
	clean := est.Subtract(y)

	half := 3
	for i := 0; i < half; i++ {
		if bg[i] != y[i] {
			t.Fatalf("leading edge background at %d: got %g want %g", i, bg[i], y[i])
		}
		if clean[i] != 0 {
			t.Fatalf("leading edge residual at %d: %g", i, clean[i])
		}
	}
	for i := len(y) - half; i < len(y); i++ {
		if bg[i] != y[i] {
			t.Fatalf("trailing edge background at %d: got %g want %g", i, bg[i], y[i])
		}
		if clean[i] != 0 {
			t.Fatalf("trailing edge residual at %d: %g", i, clean[i])
		}
	}
}

// TestExhaustiveMinimum recomputes the full (j,k) candidate grid for one
// interior index and checks the estimator returns its exact minimum, not an
// approximation.
func TestExhaustiveMinimum(t *testing.T) {
	y := []float64{3.2, -1.5, 4.8, 0.9, 6.1, -2.3, 5.5, 1.7, -0.4, 2.6, 4.1}

	est, err := NewEstimator(6)
	if err != nil {
		t.Fatal(err)
	}
	bg := est.Estimate(y)

	half := 3
	for i := half; i < len(y)-half; i++ {
		want := math.Inf(1)
		for j := 1; j <= half; j++ {
			for k := 1; k <= half; k++ {
				candidate := (y[i+k]-y[i-j])*(float64(j)/float64(j+k)) + y[i-j]
				if candidate < want {
					want = candidate
				}
				if bg[i] > candidate {
					t.Fatalf("background at %d exceeds candidate (j=%d,k=%d): %g > %g", i, j, k, bg[i], candidate)
				}
			}
		}
		if bg[i] != want {
			t.Fatalf("background at %d: got %g want exact minimum %g", i, bg[i], want)
		}
	}
}

func TestDeterminism(t *testing.T) {
	y := make([]float64, 64)
	for i := range y {
		y[i] = math.Sin(float64(i)*0.3) + 0.05*float64(i)
	}

	est, err := NewEstimator(8)
	if err != nil {
		t.Fatal(err)
	}
	a := est.Subtract(y)
	b := est.Subtract(y)

	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			t.Fatalf("nondeterministic output at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	y := make([]float64, 301)
	for i := range y {
		y[i] = math.Cos(float64(i)*0.17)*3 + float64(i)*0.02
	}

	seq, err := NewEstimator(20)
	if err != nil {
		t.Fatal(err)
	}
	par, err := NewEstimator(20)
	if err != nil {
		t.Fatal(err)
	}
	par.SetWorkers(4)

	a := seq.Subtract(y)
	b := par.Subtract(y)
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			t.Fatalf("parallel result diverges at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestShortInputAllEdges(t *testing.T) {
	// Spectrum no longer than the window: nothing is interior, the
	// background is the signal itself and the residual is zero.
	y := []float64{1, 2, 3}

	est, err := NewEstimator(4)
	if err != nil {
		t.Fatal(err)
	}
	clean := est.Subtract(y)
	for i, v := range clean {
		if v != 0 {
			t.Fatalf("short input residual at %d: %g", i, v)
		}
	}
}

func TestNaNPropagates(t *testing.T) {
	y := []float64{0, 0, 0, 0, math.NaN(), 0, 0, 0, 0}

	est, err := NewEstimator(4)
	if err != nil {
		t.Fatal(err)
	}
	clean := est.Subtract(y)

	// The NaN sample itself must surface as NaN, never be coerced to a
	// default; its neighbors still have finite candidates and stay clean.
	if !math.IsNaN(clean[4]) {
		t.Fatalf("NaN was coerced: clean[4] = %g", clean[4])
	}
	if math.Abs(clean[3]) > 1e-12 || math.Abs(clean[5]) > 1e-12 {
		t.Fatalf("NaN neighbors disturbed: clean[3]=%g clean[5]=%g", clean[3], clean[5])
	}
}

func TestProcessKeepsWavenumbers(t *testing.T) {
	y := []float64{0, 1, 4, 2, 8, 3, 1, 0.5, 2, 1, 0}
	s := makeSpectrum(y)

	est, err := NewEstimator(4)
	if err != nil {
		t.Fatal(err)
	}
	clean, err := est.Process(s, nil)
	if err != nil {
		t.Fatal(err)
	}

	if clean.Len() != s.Len() {
		t.Fatalf("row count changed: got %d want %d", clean.Len(), s.Len())
	}
	for i := range s {
		if math.Float64bits(clean[i].Wavenumber) != math.Float64bits(s[i].Wavenumber) {
			t.Fatalf("wavenumber changed at %d: %v vs %v", i, clean[i].Wavenumber, s[i].Wavenumber)
		}
	}
}

type truncatingSmoother struct{}

func (truncatingSmoother) Smooth(y []float64) []float64 { return y[:len(y)-1] }

func TestProcessRejectsBadSmoother(t *testing.T) {
	est, err := NewEstimator(4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := est.Process(makeSpectrum(make([]float64, 10)), truncatingSmoother{}); err == nil {
		t.Fatal("expected error for length-changing smoother")
	}
}

func TestProcessEmptySpectrum(t *testing.T) {
	est, err := NewEstimator(4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := est.Process(nil, nil); !errors.Is(err, spectrum.ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape for empty spectrum, got %v", err)
	}
}
