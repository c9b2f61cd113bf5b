package predict

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-mocap/codec/quant"
	"github.com/cwbudde/algo-mocap/internal/curve"
	"github.com/cwbudde/algo-mocap/internal/testutil"
)

// bruteForce is a reference search: sequential, no pruning.
func bruteForce(codes []uint16, tap, cb int) (uint64, int64, bool) {
	_, total := SearchSpace(tap, cb)
	coeffs := make([]int32, tap)

	var (
		best  uint64
		bestE int64 = math.MaxInt64
		found bool
	)

	for p := range total {
		unpack(p, cb, coeffs)

		sse, ok := sumSquares(codes, coeffs, uint(cb-1), math.MaxInt64)
		if ok && sse < bestE {
			best, bestE, found = p, sse, true
		}
	}

	return best, bestE, found
}

func TestSearchRampSingleTap(t *testing.T) {
	codes := testutil.Codes(0, 85, 170, 255)

	s, err := NewSearcher(1, 8)
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	res, err := s.Search(context.Background(), codes)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(res.Coefficients) != 1 || res.Coefficients[0] != 127 {
		t.Fatalf("coefficients = %v, want [127]", res.Coefficients)
	}

	if res.SumSquares != 22190 {
		t.Fatalf("SumSquares = %d, want 22190", res.SumSquares)
	}

	_, zero, err := Residuals(codes, []int8{0}, 8)
	if err != nil {
		t.Fatalf("Residuals: %v", err)
	}

	if zero != 101150 || res.SumSquares > zero {
		t.Fatalf("zero-vector sse = %d, searched %d", zero, res.SumSquares)
	}

	delta, err := EncodeDelta(codes)
	if err != nil {
		t.Fatalf("EncodeDelta: %v", err)
	}

	// The unit coefficient is outside the searchable range and beats it here.
	if delta.SumSquares() >= res.SumSquares {
		t.Fatalf("delta sse %d not below searched %d", delta.SumSquares(), res.SumSquares)
	}
}

func TestSearchMatchesBruteForce(t *testing.T) {
	configs := []struct{ tap, cb int }{{1, 4}, {2, 3}, {2, 5}, {3, 3}, {4, 2}}

	for _, seed := range []int64{1, 2, 3} {
		codes := testutil.RandomCodes(seed, 10, 40)

		for _, c := range configs {
			wantPacked, wantSSE, _ := bruteForce(codes, c.tap, c.cb)

			for _, workers := range []int{1, 3, 8} {
				s, err := NewSearcher(c.tap, c.cb, WithWorkers(workers))
				if err != nil {
					t.Fatalf("NewSearcher: %v", err)
				}

				res, err := s.Search(context.Background(), codes)
				if err != nil {
					t.Fatalf("Search: %v", err)
				}

				if res.Packed != wantPacked || res.SumSquares != wantSSE {
					t.Fatalf("seed %d tap %d cb %d workers %d: got (%d, %d), want (%d, %d)",
						seed, c.tap, c.cb, workers, res.Packed, res.SumSquares, wantPacked, wantSSE)
				}

				if Pack(res.Coefficients, c.cb) != res.Packed {
					t.Fatalf("coefficients %v do not pack to %d", res.Coefficients, res.Packed)
				}
			}
		}
	}
}

func TestSearchTiesPreferLowestIndex(t *testing.T) {
	// Every vector predicts zero from an all-zero history.
	codes := testutil.Codes(0, 0, 0, 0)

	for _, workers := range []int{1, 5, 16} {
		s, err := NewSearcher(2, 4, WithWorkers(workers))
		if err != nil {
			t.Fatalf("NewSearcher: %v", err)
		}

		res, err := s.Search(context.Background(), codes)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}

		if res.Packed != 0 || res.SumSquares != 0 {
			t.Fatalf("workers %d: packed %d sse %d, want 0 0", workers, res.Packed, res.SumSquares)
		}
	}
}

func TestSearchOverflow(t *testing.T) {
	_, err := Encode(context.Background(), testutil.Codes(40000), 1, 8)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
}

func TestSearchEmptyInput(t *testing.T) {
	s, err := NewSearcher(1, 4)
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	if _, err := s.Search(context.Background(), nil); !errors.Is(err, ErrMalformedStream) {
		t.Fatalf("err = %v, want ErrMalformedStream", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := NewSearcher(2, 8, WithWorkers(4))
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	if _, err := s.Search(ctx, testutil.RandomCodes(1, 12, 256)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSearchProgress(t *testing.T) {
	var (
		calls     int
		last      uint64
		backwards bool
		badTotal  bool
	)

	// Calls are serialized, so plain variables are safe here.
	s, err := NewSearcher(2, 7, WithWorkers(3), WithOnProgress(func(done, total uint64) {
		backwards = backwards || done < last
		badTotal = badTotal || total != 1<<14
		last = done
		calls++
	}))
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	if _, err := s.Search(context.Background(), testutil.RandomCodes(3, 8, 32)); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if backwards || badTotal {
		t.Fatalf("progress went backwards (%v) or reported a wrong total (%v)", backwards, badTotal)
	}

	if last != 1<<14 || calls == 0 {
		t.Fatalf("final progress %d after %d calls", last, calls)
	}
}

func TestNewSearcherErrors(t *testing.T) {
	tests := []struct {
		name     string
		tap, cb  int
		opts     []SearchOption
		tooLarge bool
	}{
		{name: "coefficient width", tap: 1, cb: 9},
		{name: "tap order", tap: MaxTapOrder + 1, cb: 1},
		{name: "too large", tap: 4, cb: 8, tooLarge: true},
		{name: "above raised limit", tap: 3, cb: 8, opts: []SearchOption{WithMaxSearchBits(20)}, tooLarge: true},
		{name: "workers", tap: 1, cb: 8, opts: []SearchOption{WithWorkers(0)}},
		{name: "max search bits", tap: 1, cb: 8, opts: []SearchOption{WithMaxSearchBits(HardMaxSearchBits + 1)}},
		{name: "strategy", tap: 1, cb: 8, opts: []SearchOption{WithStrategy(Strategy(42))}},
		{name: "refine passes", tap: 1, cb: 8, opts: []SearchOption{WithRefinePasses(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSearcher(tt.tap, tt.cb, tt.opts...)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}

			if errors.Is(err, ErrSearchTooLarge) != tt.tooLarge {
				t.Fatalf("ErrSearchTooLarge = %v, want %v (%v)", !tt.tooLarge, tt.tooLarge, err)
			}
		})
	}
}

func TestNewSearcherNilOptionIgnored(t *testing.T) {
	s, err := NewSearcher(1, 8, nil, WithWorkers(2))
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	if s.Workers() != 2 || s.TapOrder() != 1 || s.CoeffBits() != 8 {
		t.Fatalf("unexpected searcher %+v", s)
	}
}

func TestAutoStrategyResolution(t *testing.T) {
	small, err := NewSearcher(2, 8, WithStrategy(StrategyAuto))
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	if small.Strategy() != StrategyExhaustive {
		t.Fatalf("tap 2 cb 8 resolved to %v", small.Strategy())
	}

	large, err := NewSearcher(8, 8, WithStrategy(StrategyAuto))
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}

	if large.Strategy() != StrategyAutocorrelation {
		t.Fatalf("tap 8 cb 8 resolved to %v", large.Strategy())
	}
}

func quantizedMotion(t *testing.T, seed int64, frames int) []uint16 {
	t.Helper()

	ch, err := quant.Quantize(curve.Motion(seed, frames), 12)
	if err != nil {
		t.Fatalf("Quantize: %v", err)
	}

	return ch.Codes
}

func TestAutoStrategyRoundTripLargeOrder(t *testing.T) {
	codes := quantizedMotion(t, 11, 600)

	for _, tap := range []int{3, 4, 8, 16} {
		s, err := NewSearcher(tap, 8, WithStrategy(StrategyAuto))
		if err != nil {
			t.Fatalf("NewSearcher: %v", err)
		}

		stream, err := s.Encode(context.Background(), codes)
		if err != nil {
			t.Fatalf("tap %d: Encode: %v", tap, err)
		}

		got, err := Decode(stream)
		if err != nil {
			t.Fatalf("tap %d: Decode: %v", tap, err)
		}

		testutil.RequireCodesEqual(t, got, codes)

		_, zero, err := Residuals(codes, nil, 8)
		if err != nil {
			t.Fatalf("Residuals: %v", err)
		}

		if stream.SumSquares() > zero {
			t.Fatalf("tap %d: sse %d above zero-vector %d", tap, stream.SumSquares(), zero)
		}
	}
}
