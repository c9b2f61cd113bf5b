package predict

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-mocap/internal/autocorr"
	"github.com/cwbudde/algo-mocap/internal/window"
)

// whiteNoiseCorrection conditions r[0] so nearly singular systems stay
// solvable.
const whiteNoiseCorrection = 1e-9

// estimate chooses coefficients in closed form: windowed autocorrelation,
// Levinson-Durbin at every order up to tapOrder, rounding to fixed point and
// a few +/-1 coordinate passes from the best rounded solution. The all-zero
// vector is always a candidate, so the result is never worse than no
// prediction.
func (s *Searcher) estimate(codes []uint16) (Result, error) {
	bestCoeffs := make([]int32, s.tapOrder)

	bestSSE, found := sumSquares(codes, bestCoeffs, s.shift, math.MaxInt64)

	for _, coeffs := range s.levinson(codes) {
		limit := int64(math.MaxInt64)
		if found {
			limit = bestSSE
		}

		if sse, ok := sumSquares(codes, coeffs, s.shift, limit); ok {
			bestCoeffs, bestSSE, found = coeffs, sse, true
		}
	}

	if s.tapOrder > 0 {
		coeffs, sse, ok := s.refine(codes, slices.Clone(bestCoeffs))
		if ok && (!found || sse < bestSSE) {
			bestCoeffs, bestSSE, found = coeffs, sse, true
		}
	}

	if !found {
		return Result{}, fmt.Errorf("%w: no coefficient vector keeps residuals in range", ErrOverflow)
	}

	out := narrow(bestCoeffs)

	return Result{
		Coefficients: out,
		SumSquares:   bestSSE,
		Packed:       Pack(out, s.coeffBits),
		Strategy:     StrategyAutocorrelation,
	}, nil
}

// levinson returns one fixed-point vector per model order 1..tapOrder,
// clamped to the signed range and zero-padded to tapOrder. Orders above
// len(codes)-1 are not fitted.
func (s *Searcher) levinson(codes []uint16) [][]int32 {
	order := min(s.tapOrder, len(codes)-1)
	if order < 1 {
		return nil
	}

	x := make([]float64, len(codes))
	for i, c := range codes {
		x[i] = float64(c)
	}

	window.Apply(s.window, x)

	r, err := autocorr.Lags(x, order)
	if err != nil || r[0] <= 0 {
		return nil
	}

	r[0] *= 1 + whiteNoiseCorrection

	lo, hi := CoeffRange(s.coeffBits)
	scale := float64(Unit(s.coeffBits))

	out := make([][]int32, 0, order)

	for p := 1; p <= order; p++ {
		coeffs := make([]int32, s.tapOrder)

		for k, a := range levinsonDurbin(r, p) {
			q := math.Round(a * scale)
			coeffs[k] = int32(max(float64(lo), min(float64(hi), q)))
		}

		out = append(out, coeffs)
	}

	return out
}

// levinsonDurbin solves sum_j a[j]*r[|i-j|] = r[i+1] for i in [0, order),
// giving the predictor x[n] ~ sum_j a[j]*x[n-1-j].
func levinsonDurbin(r []float64, order int) []float64 {
	a := make([]float64, order)
	prev := make([]float64, order)
	e := r[0]

	for i := range order {
		acc := r[i+1]
		for j := range i {
			acc -= a[j] * r[i-j]
		}

		k := acc / e

		copy(prev, a[:i])

		a[i] = k
		for j := range i {
			a[j] = prev[j] - k*prev[i-1-j]
		}

		e *= 1 - k*k
		if e <= 0 {
			break
		}
	}

	return a
}

// refine moves single coefficients by one step while that lowers the
// residual energy.
func (s *Searcher) refine(codes []uint16, coeffs []int32) ([]int32, int64, bool) {
	best, ok := sumSquares(codes, coeffs, s.shift, math.MaxInt64)
	lo, hi := CoeffRange(s.coeffBits)

	for range s.refinePasses {
		improved := false

		for k := range coeffs {
			for _, step := range [...]int32{-1, 1} {
				c := coeffs[k] + step
				if c < int32(lo) || c > int32(hi) {
					continue
				}

				limit := int64(math.MaxInt64)
				if ok {
					limit = best
				}

				old := coeffs[k]
				coeffs[k] = c

				sse, fine := sumSquares(codes, coeffs, s.shift, limit)
				if fine {
					best, ok, improved = sse, true, true
				} else {
					coeffs[k] = old
				}
			}
		}

		if !improved {
			break
		}
	}

	return coeffs, best, ok
}
