package predict

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-mocap/internal/window"
)

// SearchSpace returns the packed width tapOrder*coeffBits and the number of
// coefficient vectors an exhaustive search evaluates, saturating at
// math.MaxUint64.
func SearchSpace(tapOrder, coeffBits int) (bits int, candidates uint64) {
	bits = tapOrder * coeffBits
	if bits >= 64 {
		return bits, math.MaxUint64
	}

	return bits, uint64(1) << bits
}

// Result is the outcome of a coefficient search.
type Result struct {
	Coefficients []int8   // sign-extended fixed-point values, one per tap
	SumSquares   int64    // residual energy of Coefficients
	Packed       uint64   // enumeration index of Coefficients
	Strategy     Strategy // strategy that produced the result
}

// Searcher selects predictor coefficients for one (tapOrder, coeffBits)
// configuration. A Searcher is safe for concurrent use.
type Searcher struct {
	tapOrder      int
	coeffBits     int
	shift         uint
	workers       int
	maxSearchBits int
	strategy      Strategy
	window        window.Type
	refinePasses  int
	onProgress    ProgressFunc
}

// NewSearcher creates a Searcher. With [StrategyExhaustive] configurations
// whose search space exceeds the limit are rejected with [ErrSearchTooLarge].
func NewSearcher(tapOrder, coeffBits int, opts ...SearchOption) (*Searcher, error) {
	if err := ValidateTapOrder(tapOrder); err != nil {
		return nil, err
	}

	if err := ValidateCoeffBits(coeffBits); err != nil {
		return nil, err
	}

	cfg := defaultSearchConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	bits, _ := SearchSpace(tapOrder, coeffBits)
	if cfg.strategy == StrategyExhaustive && bits > cfg.maxSearchBits {
		return nil, fmt.Errorf("%w: %w: %d taps x %d bits needs 2^%d candidates, limit 2^%d",
			ErrInvalidConfig, ErrSearchTooLarge, tapOrder, coeffBits, bits, cfg.maxSearchBits)
	}

	return &Searcher{
		tapOrder:      tapOrder,
		coeffBits:     coeffBits,
		shift:         uint(coeffBits - 1),
		workers:       cfg.workers,
		maxSearchBits: cfg.maxSearchBits,
		strategy:      cfg.strategy,
		window:        cfg.window,
		refinePasses:  cfg.refinePasses,
		onProgress:    cfg.onProgress,
	}, nil
}

// TapOrder returns the predictor length.
func (s *Searcher) TapOrder() int { return s.tapOrder }

// CoeffBits returns the coefficient width.
func (s *Searcher) CoeffBits() int { return s.coeffBits }

// Workers returns the exhaustive search parallelism.
func (s *Searcher) Workers() int { return s.workers }

// Strategy returns the strategy a search will actually run, resolving
// [StrategyAuto] against the search limit.
func (s *Searcher) Strategy() Strategy {
	if s.strategy != StrategyAuto {
		return s.strategy
	}

	bits, _ := SearchSpace(s.tapOrder, s.coeffBits)
	if bits <= s.maxSearchBits {
		return StrategyExhaustive
	}

	return StrategyAutocorrelation
}

// Search picks the coefficient vector minimizing the residual sum of
// squares over codes. It returns ctx.Err() if ctx is cancelled first and
// [ErrOverflow] if no vector keeps every residual within int16.
func (s *Searcher) Search(ctx context.Context, codes []uint16) (Result, error) {
	if len(codes) == 0 {
		return Result{}, fmt.Errorf("%w: no frames", ErrMalformedStream)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if s.Strategy() == StrategyAutocorrelation {
		return s.estimate(codes)
	}

	return s.exhaustive(ctx, codes)
}

type candidate struct {
	packed uint64
	sse    int64
	found  bool
}

// progress serializes callback invocations of one search.
type progress struct {
	mu    sync.Mutex
	done  uint64
	total uint64
	fn    ProgressFunc
}

func (p *progress) add(n uint64) {
	if p.fn == nil || n == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.done += n
	p.fn(p.done, p.total)
}

// exhaustive splits the packed range into one contiguous chunk per worker
// and reduces the chunk winners. Chunks are reduced in ascending order with a
// strict comparison, so ties resolve to the lowest packed index for any
// worker count.
func (s *Searcher) exhaustive(ctx context.Context, codes []uint16) (Result, error) {
	_, total := SearchSpace(s.tapOrder, s.coeffBits)

	workers := min(uint64(s.workers), total)
	chunk := (total + workers - 1) / workers

	results := make([]candidate, workers)
	errs := make([]error, workers)
	prog := &progress{total: total, fn: s.onProgress}

	var wg sync.WaitGroup

	for w := range workers {
		lo := min(w*chunk, total)
		hi := min(lo+chunk, total)

		wg.Go(func() {
			results[w], errs[w] = s.scan(ctx, codes, lo, hi, prog)
		})
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Result{}, err
		}
	}

	var best candidate

	for _, c := range results {
		if c.found && (!best.found || c.sse < best.sse) {
			best = c
		}
	}

	if !best.found {
		return Result{}, fmt.Errorf("%w: no coefficient vector keeps residuals in range", ErrOverflow)
	}

	coeffs := make([]int32, s.tapOrder)
	unpack(best.packed, s.coeffBits, coeffs)

	return Result{
		Coefficients: narrow(coeffs),
		SumSquares:   best.sse,
		Packed:       best.packed,
		Strategy:     StrategyExhaustive,
	}, nil
}

// scan evaluates packed indices [lo, hi) in ascending order.
func (s *Searcher) scan(ctx context.Context, codes []uint16, lo, hi uint64, prog *progress) (candidate, error) {
	coeffs := make([]int32, s.tapOrder)
	best := candidate{sse: math.MaxInt64}

	var pending uint64

	for p := lo; p < hi; p++ {
		if (p-lo)%progressInterval == 0 {
			if err := ctx.Err(); err != nil {
				return candidate{}, err
			}

			prog.add(pending)
			pending = 0
		}

		unpack(p, s.coeffBits, coeffs)

		sse, ok := sumSquares(codes, coeffs, s.shift, best.sse)
		if ok {
			best = candidate{packed: p, sse: sse, found: true}
		}

		pending++
	}

	prog.add(pending)

	return best, nil
}
