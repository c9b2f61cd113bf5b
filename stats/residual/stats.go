// Package residual computes statistics of prediction residual streams: energy,
// spread, zeroth-order entropy and the storage width they imply.
package residual

import (
	"maps"
	"math"
	"math/bits"
	"slices"
)

// Stats holds residual statistics.
type Stats struct {
	Length     int
	SumSquares int64   // residual energy, the quantity the predictor minimizes
	Mean       float64 // mean residual
	Variance   float64 // population variance
	RMS        float64
	Min        int16
	Max        int16
	Peak       int // max(|min|, |max|)
	MaxAbsPos  int // first frame reaching Peak
	Zeros      int
	Entropy    float64 // bits per residual, zeroth order
	MinBits    int     // two's-complement width holding every residual
}

// EstimatedBytes is the entropy bound on the coded size of the stream,
// rounded up to whole bytes.
func (s Stats) EstimatedBytes() int {
	return int(math.Ceil(s.Entropy * float64(s.Length) / 8))
}

// RawBytes is the size of the stream stored at MinBits per residual.
func (s Stats) RawBytes() int {
	return (s.Length*s.MinBits + 7) / 8
}

// Calculate computes all statistics of res.
func Calculate(res []int16) Stats {
	acc := NewAccumulator()
	acc.Update(res)

	return acc.Result()
}

// Accumulator gathers residual statistics across several streams, for
// example every channel of one clip. Results match [Calculate] on the
// concatenated input.
type Accumulator struct {
	n         int
	mean      float64
	m2        float64
	sumSq     int64
	minVal    int16
	maxVal    int16
	peak      int
	peakPos   int
	zeros     int
	histogram map[int16]int
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{histogram: make(map[int16]int)}
}

// Update adds a block of residuals.
func (a *Accumulator) Update(res []int16) {
	for _, r := range res {
		if a.n == 0 {
			a.minVal, a.maxVal = r, r
		}

		a.n++

		x := float64(r)
		delta := x - a.mean
		a.mean += delta / float64(a.n)
		a.m2 += delta * (x - a.mean)

		a.sumSq += int64(r) * int64(r)

		a.minVal = min(a.minVal, r)
		a.maxVal = max(a.maxVal, r)

		if abs := absInt(r); abs > a.peak || a.n == 1 {
			a.peak = abs
			a.peakPos = a.n - 1
		}

		if r == 0 {
			a.zeros++
		}

		a.histogram[r]++
	}
}

// Result returns the statistics of everything added so far.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{}
	}

	nf := float64(a.n)

	var entropy float64

	for _, v := range slices.Sorted(maps.Keys(a.histogram)) {
		p := float64(a.histogram[v]) / nf
		entropy -= p * math.Log2(p)
	}

	return Stats{
		Length:     a.n,
		SumSquares: a.sumSq,
		Mean:       a.mean,
		Variance:   a.m2 / nf,
		RMS:        math.Sqrt(float64(a.sumSq) / nf),
		Min:        a.minVal,
		Max:        a.maxVal,
		Peak:       a.peak,
		MaxAbsPos:  a.peakPos,
		Zeros:      a.zeros,
		Entropy:    max(entropy, 0),
		MinBits:    max(signedWidth(a.minVal), signedWidth(a.maxVal)),
	}
}

// Reset clears the accumulator for reuse.
func (a *Accumulator) Reset() {
	*a = Accumulator{histogram: make(map[int16]int)}
}

// signedWidth returns the two's-complement width needed for v.
func signedWidth(v int16) int {
	if v < 0 {
		return bits.Len16(uint16(^v)) + 1
	}

	return bits.Len16(uint16(v)) + 1
}

func absInt(v int16) int {
	if v < 0 {
		return -int(v)
	}

	return int(v)
}
