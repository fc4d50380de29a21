package smoothing

import (
	"github.com/mjibson/go-dsp/fft"
)

// fftKernelThreshold is the kernel length above which same-length
// convolution switches from the direct sum to the FFT path. Below it the
// direct scan wins on constant factors alone.
const fftKernelThreshold = 64

// convolveSame convolves y with an odd-length kernel and returns a sequence
// of the same length as y, treating samples beyond either end as zero. Both
// paths compute the identical sum; only the cost differs.
func convolveSame(y, kernel []float64) []float64 {
	if len(y) == 0 {
		return []float64{}
	}
	if len(kernel) >= fftKernelThreshold && len(y) >= len(kernel) {
		return convolveFFT(y, kernel)
	}
	return convolveDirect(y, kernel)
}

// convolveDirect is the straightforward O(n*k) sliding dot product with
// implicit zero padding at the edges.
func convolveDirect(y, kernel []float64) []float64 {
	n := len(y)
	m := len(kernel) / 2
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		var sum float64
		for k, w := range kernel {
			idx := i + m - k
			if idx >= 0 && idx < n {
				sum += w * y[idx]
			}
		}
		out[i] = sum
	}
	return out
}

// convolveFFT computes the same zero-padded convolution in the frequency
// domain: pad both sequences to the full linear-convolution length,
// multiply the transforms, invert, and slice out the centered segment.
func convolveFFT(y, kernel []float64) []float64 {
	n := len(y)
	m := len(kernel) / 2
	full := n + len(kernel) - 1

	py := make([]float64, full)
	copy(py, y)
	pk := make([]float64, full)
	copy(pk, kernel)

	fy := fft.FFTReal(py)
	fk := fft.FFTReal(pk)
	for i := range fy {
		fy[i] *= fk[i]
	}

	conv := fft.IFFT(fy)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = real(conv[i+m])
	}
	return out
}
