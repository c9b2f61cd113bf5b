package predict

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// predictAt returns the fixed-point prediction for frame i from history,
// treating frames before 0 as zero.
func predictAt(history []uint16, i int, coeffs []int32, shift uint) int64 {
	var acc int64
	for k, c := range coeffs {
		j := i - 1 - k
		if j < 0 {
			break
		}

		acc += int64(history[j]) * int64(c)
	}

	return acc >> shift
}

// sumSquares runs the recurrence over codes and returns the residual energy.
// It gives up (ok == false) as soon as a residual leaves int16 or the running
// sum reaches limit.
func sumSquares(codes []uint16, coeffs []int32, shift uint, limit int64) (sse int64, ok bool) {
	for i, v := range codes {
		r := int64(v) - predictAt(codes, i, coeffs, shift)
		if r < math.MinInt16 || r > math.MaxInt16 {
			return 0, false
		}

		sse += r * r
		if sse >= limit {
			return sse, false
		}
	}

	return sse, true
}

// residuals runs the encoder recurrence. The window is fed the true codes,
// which is what the decoder reconstructs.
func residuals(codes []uint16, coeffs []int32, shift uint) ([]int16, int64, error) {
	out := make([]int16, len(codes))

	var sse int64

	for i, v := range codes {
		r := int64(v) - predictAt(codes, i, coeffs, shift)
		if r < math.MinInt16 || r > math.MaxInt16 {
			return nil, 0, fmt.Errorf("%w: frame %d: residual %d", ErrOverflow, i, r)
		}

		out[i] = int16(r)
		sse += r * r
	}

	return out, sse, nil
}

// reconstruct is the exact inverse of residuals.
func reconstruct(res []int16, coeffs []int32, shift uint) ([]uint16, error) {
	out := make([]uint16, len(res))

	for i, r := range res {
		v := predictAt(out, i, coeffs, shift) + int64(r)
		if v < 0 || v > math.MaxUint16 {
			return nil, fmt.Errorf("%w: frame %d: reconstructed value %d outside code range", ErrMalformedStream, i, v)
		}

		out[i] = uint16(v)
	}

	return out, nil
}

// convert copies in into a slice of another integer type. Callers guarantee
// every value fits.
func convert[T, U constraints.Integer](in []T) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = U(v)
	}

	return out
}

func widen(coeffs []int8) []int32 { return convert[int8, int32](coeffs) }

func narrow(coeffs []int32) []int8 { return convert[int32, int8](coeffs) }
