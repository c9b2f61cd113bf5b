// Package autocorr computes short-lag autocorrelation sequences, switching
// between direct summation and FFT-based correlation by cost.
package autocorr

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	ErrEmptyInput = errors.New("autocorr: empty input")
	ErrInvalidLag = errors.New("autocorr: invalid lag")
)

// directCostLimit is the number of multiply-adds (len * lags) above which the
// FFT path is used.
const directCostLimit = 1 << 14

// Lags returns r[k] = sum x[n]*x[n-k] for k in [0, maxLag].
// maxLag must be in [0, len(x)-1].
func Lags(x []float64, maxLag int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	if maxLag < 0 || maxLag >= len(x) {
		return nil, fmt.Errorf("%w: %d for length %d", ErrInvalidLag, maxLag, len(x))
	}

	if len(x)*(maxLag+1) <= directCostLimit {
		return Direct(x, maxLag)
	}

	return FFT(x, maxLag)
}

// Direct computes the lags by explicit summation.
func Direct(x []float64, maxLag int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	if maxLag < 0 || maxLag >= len(x) {
		return nil, fmt.Errorf("%w: %d for length %d", ErrInvalidLag, maxLag, len(x))
	}

	n := len(x)
	out := make([]float64, maxLag+1)
	prod := make([]float64, n)

	for lag := range out {
		m := n - lag
		vecmath.MulBlock(prod[:m], x[lag:], x[:m])

		var sum float64
		for _, v := range prod[:m] {
			sum += v
		}

		out[lag] = sum
	}

	return out, nil
}

// FFT computes the lags as IFFT(|FFT(x)|^2), zero-padded so the circular
// correlation does not wrap.
func FFT(x []float64, maxLag int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	if maxLag < 0 || maxLag >= len(x) {
		return nil, fmt.Errorf("%w: %d for length %d", ErrInvalidLag, maxLag, len(x))
	}

	n := len(x)
	fftSize := nextPowerOf2(2*n - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("autocorr: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)

	err = plan.Forward(freq, padded)
	if err != nil {
		return nil, fmt.Errorf("autocorr: forward FFT failed: %w", err)
	}

	for i, c := range freq {
		freq[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	err = plan.Inverse(padded, freq)
	if err != nil {
		return nil, fmt.Errorf("autocorr: inverse FFT failed: %w", err)
	}

	out := make([]float64, maxLag+1)
	for lag := range out {
		out[lag] = real(padded[lag])
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
