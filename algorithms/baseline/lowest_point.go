package baseline

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/spectrakit/ramanbg/spectrum"
)

// Validation errors for the window-width parameter.
var (
	ErrWindowTooSmall = errors.New("baseline: window width must be >= 2")
	ErrWindowOdd      = errors.New("baseline: window width must be an even integer")
)

// Smoother is the contract for an optional pre-processing collaborator: any
// mapping from an ordered numeric sequence to an equal-length sequence.
// Implementations live in algorithms/smoothing; the estimator only depends on
// the shape-preserving contract.
type Smoother interface {
	Smooth(y []float64) []float64
}

// Estimator implements the lowest-point fluorescence background estimator of
// Vodinh et al. (2006). At every interior sample it scans all pairs of a left
// anchor (offset j) and a right anchor (offset k) within the half-window and
// takes the minimum of the straight-line interpolations between the anchor
// pair, evaluated at the sample itself. That minimum is the local background.
//
// The exhaustive (j, k) scan is the published method's definition, not an
// optimization target: O(halfWidth^2) per interior sample, O(N*halfWidth^2)
// total. The per-sample computations are independent, so the outer loop can
// be split across workers for large spectra without changing any result.
//
// Reference:
//   - T. Vo-Dinh et al., "Automated fluorescence background removal for
//     Raman spectroscopy", 2006
type Estimator struct {
	windowWidth int
	halfWidth   int
	workers     int
}

// NewEstimator creates a background estimator for the given full window
// width in samples. The width must be an even integer >= 2; both conditions
// are rejected with distinct errors before any processing can happen.
func NewEstimator(windowWidth int) (*Estimator, error) {
	if windowWidth < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrWindowTooSmall, windowWidth)
	}
	if windowWidth%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrWindowOdd, windowWidth)
	}

	return &Estimator{
		windowWidth: windowWidth,
		halfWidth:   windowWidth / 2,
		workers:     1,
	}, nil
}

// WindowWidth returns the configured full window width.
func (e *Estimator) WindowWidth() int {
	return e.windowWidth
}

// SetWorkers sets how many goroutines the interior-index loop is split
// across. Values below 2 select the sequential scan. The output is identical
// for any worker count.
func (e *Estimator) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

// Estimate computes the background curve for an intensity sequence. The
// result has the same length as the input: interior indices (at least
// halfWidth away from both ends) carry the lowest-point estimate, edge
// indices carry their own input value, so subtraction is a no-op there.
//
// NaN and Inf inputs propagate through the comparisons unmodified. A window
// whose candidates all fail the < comparison (e.g. a NaN neighbor) leaves
// the running minimum at +Inf, which is returned as-is rather than being
// coerced to anything; hiding it would mask bad input data.
func (e *Estimator) Estimate(y []float64) []float64 {
	n := len(y)
	bg := make([]float64, n)
	copy(bg, y)

	lo, hi := e.halfWidth, n-e.halfWidth
	if lo >= hi {
		// Spectrum no longer than the window: every sample is an edge.
		return bg
	}

	if e.workers < 2 {
		e.estimateRange(y, bg, lo, hi)
		return bg
	}

	var wg sync.WaitGroup
	chunk := (hi - lo + e.workers - 1) / e.workers
	for start := lo; start < hi; start += chunk {
		end := start + chunk
		if end > hi {
			end = hi
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			e.estimateRange(y, bg, start, end)
		}(start, end)
	}
	wg.Wait()

	return bg
}

// estimateRange fills bg[lo:hi] with the lowest-point estimate. Reads only
// y, writes only its own index range.
func (e *Estimator) estimateRange(y, bg []float64, lo, hi int) {
	half := e.halfWidth
	for i := lo; i < hi; i++ {
		lowest := math.Inf(1)
		for j := 1; j <= half; j++ {
			left := y[i-j]
			for k := 1; k <= half; k++ {
				// Height at index i of the line through (i-j, y[i-j])
				// and (i+k, y[i+k]); i sits j/(j+k) of the way across.
				candidate := (y[i+k]-left)*(float64(j)/float64(j+k)) + left
				if candidate < lowest {
					lowest = candidate
				}
			}
		}
		bg[i] = lowest
	}
}

// Subtract returns the input minus its estimated background, elementwise.
func (e *Estimator) Subtract(y []float64) []float64 {
	clean := make([]float64, len(y))
	floats.SubTo(clean, y, e.Estimate(y))
	return clean
}

// Process runs the full pipeline on a spectrum: optional smoothing, then
// background estimation and subtraction. A nil smoother means the raw
// intensity column is used unchanged. The wavenumber column is carried
// through bit-identical, same length, same order.
func (e *Estimator) Process(s spectrum.Spectrum, smoother Smoother) (spectrum.Spectrum, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: empty spectrum", spectrum.ErrInvalidShape)
	}

	y := s.Intensities()
	if smoother != nil {
		y = smoother.Smooth(y)
		if len(y) != s.Len() {
			return nil, fmt.Errorf("baseline: smoother returned %d samples for %d inputs", len(y), s.Len())
		}
	}

	return s.WithIntensities(e.Subtract(y))
}
