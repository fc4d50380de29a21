package smoothing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SavitzkyGolay smooths a sequence by least-squares fitting a low-order
// polynomial to a sliding window and replacing each sample with the fitted
// value. For each window position the fit reduces to a fixed dot product, so
// the coefficients are computed once at construction.
//
// Edges are handled the way scipy's savgol_filter does by default: the
// polynomial fitted to the first (last) full window is evaluated at the
// off-center positions, rather than padding the data. A consequence worth
// relying on in tests: with degree >= 1 a straight line is reproduced
// exactly, edges included.
//
// References:
//   - A. Savitzky, M.J.E. Golay, "Smoothing and Differentiation of Data by
//     Simplified Least Squares Procedures", Analytical Chemistry, 1964
//   - W.H. Press et al., "Numerical Recipes", 3rd Edition, Section 14.9
type SavitzkyGolay struct {
	span   int
	degree int

	// coeffs[p] are the window weights that evaluate the window's
	// least-squares polynomial at window position p. coeffs[span/2] is the
	// usual centered kernel; the other rows serve the edges.
	coeffs [][]float64
}

// NewSavitzkyGolay creates a smoother with the given window span (odd, >= 3)
// and polynomial degree (0 <= degree < span).
func NewSavitzkyGolay(span, degree int) (*SavitzkyGolay, error) {
	if span < 3 || span%2 == 0 {
		return nil, fmt.Errorf("smoothing: span must be an odd integer >= 3, got %d", span)
	}
	if degree < 0 || degree >= span {
		return nil, fmt.Errorf("smoothing: degree must be in [0, span), got %d", degree)
	}

	sg := &SavitzkyGolay{span: span, degree: degree}
	sg.computeCoefficients()
	return sg, nil
}

// NewSavitzkyGolayDefault creates the span-5, degree-1 smoother used for
// Raman pre-processing: wide enough to knock down shot noise, low enough in
// order to leave peak shapes alone.
func NewSavitzkyGolayDefault() *SavitzkyGolay {
	sg, err := NewSavitzkyGolay(5, 1)
	if err != nil {
		// Unreachable with the fixed parameters above.
		panic(err)
	}
	return sg
}

// computeCoefficients derives the per-position window weights. With the
// Vandermonde matrix A (span x degree+1, rows are powers of the centered
// offset) the fitted value at window position p is a_p^T A^+ y, so the
// weight row for p is (A^+)^T a_p. The pseudoinverse comes from gonum's
// least-squares solve (QR under the hood).
func (sg *SavitzkyGolay) computeCoefficients() {
	half := sg.span / 2
	cols := sg.degree + 1

	a := mat.NewDense(sg.span, cols, nil)
	for i := 0; i < sg.span; i++ {
		t := float64(i - half)
		for m := 0; m < cols; m++ {
			a.Set(i, m, math.Pow(t, float64(m)))
		}
	}

	// pinv = A^+, shape (degree+1) x span.
	eye := mat.NewDense(sg.span, sg.span, nil)
	for i := 0; i < sg.span; i++ {
		eye.Set(i, i, 1)
	}
	var pinv mat.Dense
	if err := pinv.Solve(a, eye); err != nil {
		// A has full column rank for any valid span/degree.
		panic(fmt.Sprintf("smoothing: Savitzky-Golay solve failed: %v", err))
	}

	sg.coeffs = make([][]float64, sg.span)
	for p := 0; p < sg.span; p++ {
		ap := mat.NewVecDense(cols, nil)
		t := float64(p - half)
		for m := 0; m < cols; m++ {
			ap.SetVec(m, math.Pow(t, float64(m)))
		}

		var c mat.VecDense
		c.MulVec(pinv.T(), ap)

		row := make([]float64, sg.span)
		for i := 0; i < sg.span; i++ {
			row[i] = c.AtVec(i)
		}
		sg.coeffs[p] = row
	}
}

// Span returns the window span in samples.
func (sg *SavitzkyGolay) Span() int {
	return sg.span
}

// Degree returns the polynomial degree.
func (sg *SavitzkyGolay) Degree() int {
	return sg.degree
}

// Smooth applies the filter and returns a sequence of the same length.
// Inputs shorter than the window span are returned as an unmodified copy;
// there is no full window to fit.
func (sg *SavitzkyGolay) Smooth(y []float64) []float64 {
	n := len(y)
	out := make([]float64, n)
	if n < sg.span {
		copy(out, y)
		return out
	}

	half := sg.span / 2
	center := sg.coeffs[half]

	for i := half; i < n-half; i++ {
		out[i] = floats.Dot(center, y[i-half:i+half+1])
	}

	// Leading edge: evaluate the first window's fit at positions 0..half-1.
	head := y[:sg.span]
	for p := 0; p < half; p++ {
		out[p] = floats.Dot(sg.coeffs[p], head)
	}

	// Trailing edge: the last window's fit at its off-center positions.
	tail := y[n-sg.span:]
	for p := half + 1; p < sg.span; p++ {
		out[n-sg.span+p] = floats.Dot(sg.coeffs[p], tail)
	}

	return out
}
