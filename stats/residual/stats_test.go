package residual

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mocap/internal/testutil"
)

const tolerance = 1e-10

func TestCalculateDeltaRamp(t *testing.T) {
	s := Calculate([]int16{0, 85, 85, 85})

	if s.Length != 4 || s.SumSquares != 21675 {
		t.Fatalf("length %d sse %d", s.Length, s.SumSquares)
	}

	if s.Min != 0 || s.Max != 85 || s.Peak != 85 || s.MaxAbsPos != 1 || s.Zeros != 1 {
		t.Fatalf("unexpected extremes %+v", s)
	}

	if math.Abs(s.Mean-63.75) > tolerance {
		t.Fatalf("mean = %v", s.Mean)
	}

	wantEntropy := -(0.25*math.Log2(0.25) + 0.75*math.Log2(0.75))
	if math.Abs(s.Entropy-wantEntropy) > tolerance {
		t.Fatalf("entropy = %v, want %v", s.Entropy, wantEntropy)
	}

	if s.MinBits != 8 || s.EstimatedBytes() != 1 || s.RawBytes() != 4 {
		t.Fatalf("minBits %d estimated %d raw %d", s.MinBits, s.EstimatedBytes(), s.RawBytes())
	}
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v", s)
	}

	if s.EstimatedBytes() != 0 {
		t.Fatalf("EstimatedBytes = %d", s.EstimatedBytes())
	}
}

func TestCalculateConstantHasZeroEntropy(t *testing.T) {
	s := Calculate([]int16{-3, -3, -3, -3, -3})

	if s.Entropy != 0 || s.Variance != 0 {
		t.Fatalf("entropy %v variance %v", s.Entropy, s.Variance)
	}

	if s.Peak != 3 || s.MaxAbsPos != 0 || s.MinBits != 3 {
		t.Fatalf("peak %d pos %d minBits %d", s.Peak, s.MaxAbsPos, s.MinBits)
	}
}

func TestMinBits(t *testing.T) {
	tests := []struct {
		res  []int16
		want int
	}{
		{[]int16{0}, 1},
		{[]int16{-1}, 1},
		{[]int16{1}, 2},
		{[]int16{-2, 1}, 2},
		{[]int16{127, -128}, 8},
		{[]int16{128}, 9},
		{[]int16{-129}, 9},
		{[]int16{math.MaxInt16}, 16},
		{[]int16{math.MinInt16}, 16},
	}

	for _, tt := range tests {
		if got := Calculate(tt.res).MinBits; got != tt.want {
			t.Errorf("MinBits(%v) = %d, want %d", tt.res, got, tt.want)
		}
	}
}

func TestAccumulatorMatchesCalculate(t *testing.T) {
	a := []int16{4, -2, 0, 7}
	b := []int16{-9, 0, 3}

	acc := NewAccumulator()
	acc.Update(a)
	acc.Update(b)

	got := acc.Result()
	want := Calculate(append(append([]int16{}, a...), b...))

	if got != want {
		t.Fatalf("accumulated %+v\nwant        %+v", got, want)
	}

	if got.MaxAbsPos != 4 {
		t.Fatalf("MaxAbsPos = %d, want 4", got.MaxAbsPos)
	}

	acc.Reset()

	if acc.Result() != (Stats{}) {
		t.Fatal("Reset did not clear the accumulator")
	}
}

func TestVarianceMatchesDefinition(t *testing.T) {
	codes := testutil.RandomCodes(5, 8, 500)

	res := make([]int16, len(codes))
	for i, c := range codes {
		res[i] = int16(c) - 128
	}

	s := Calculate(res)

	var mean float64
	for _, r := range res {
		mean += float64(r)
	}

	mean /= float64(len(res))

	var variance float64
	for _, r := range res {
		d := float64(r) - mean
		variance += d * d
	}

	variance /= float64(len(res))

	if math.Abs(s.Mean-mean) > 1e-9 || math.Abs(s.Variance-variance) > 1e-7 {
		t.Fatalf("mean %v/%v variance %v/%v", s.Mean, mean, s.Variance, variance)
	}

	if s.Entropy <= 0 || s.Entropy > 8 {
		t.Fatalf("entropy %v outside (0, 8]", s.Entropy)
	}
}
