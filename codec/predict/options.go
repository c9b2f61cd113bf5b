package predict

import (
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-mocap/internal/window"
)

const (
	defaultMaxSearchBits = 16
	defaultStrategy      = StrategyExhaustive
	defaultWindow        = window.TypeHann
	defaultRefinePasses  = 4

	// HardMaxSearchBits bounds exhaustive enumeration to what a uint64
	// counter can index.
	HardMaxSearchBits = 62

	progressInterval = 4096
)

// Strategy selects how coefficients are chosen.
type Strategy int

const (
	// StrategyExhaustive evaluates every coefficient vector.
	StrategyExhaustive Strategy = iota
	// StrategyAutocorrelation solves the normal equations (Levinson-Durbin)
	// and rounds to fixed point.
	StrategyAutocorrelation
	// StrategyAuto is exhaustive up to the search limit and closed-form above.
	StrategyAuto
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s >= StrategyExhaustive && s <= StrategyAuto
}

func (s Strategy) String() string {
	switch s {
	case StrategyExhaustive:
		return "exhaustive"
	case StrategyAutocorrelation:
		return "autocorrelation"
	case StrategyAuto:
		return "auto"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ProgressFunc receives the number of evaluated candidates out of total.
// Calls are serialized.
type ProgressFunc func(done, total uint64)

// SearchOption configures a [Searcher].
type SearchOption func(*searchConfig) error

type searchConfig struct {
	workers       int
	maxSearchBits int
	strategy      Strategy
	window        window.Type
	refinePasses  int
	onProgress    ProgressFunc
}

func defaultSearchConfig() searchConfig {
	return searchConfig{
		workers:       runtime.GOMAXPROCS(0),
		maxSearchBits: defaultMaxSearchBits,
		strategy:      defaultStrategy,
		window:        defaultWindow,
		refinePasses:  defaultRefinePasses,
	}
}

// WithWorkers sets how many goroutines share one exhaustive search
// (default GOMAXPROCS). The result does not depend on it.
func WithWorkers(n int) SearchOption {
	return func(cfg *searchConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be >= 1: %d", ErrInvalidConfig, n)
		}

		cfg.workers = n

		return nil
	}
}

// WithMaxSearchBits sets the largest tapOrder*coeffBits an exhaustive search
// accepts (default 16, at most 62).
func WithMaxSearchBits(bits int) SearchOption {
	return func(cfg *searchConfig) error {
		if bits < 0 || bits > HardMaxSearchBits {
			return fmt.Errorf("%w: max search bits must be in [0, %d]: %d", ErrInvalidConfig, HardMaxSearchBits, bits)
		}

		cfg.maxSearchBits = bits

		return nil
	}
}

// WithStrategy selects the coefficient selection strategy (default
// [StrategyExhaustive]).
func WithStrategy(s Strategy) SearchOption {
	return func(cfg *searchConfig) error {
		if !s.Valid() {
			return fmt.Errorf("%w: strategy %d", ErrInvalidConfig, int(s))
		}

		cfg.strategy = s

		return nil
	}
}

// WithAnalysisWindow sets the window applied before autocorrelation in the
// closed-form strategy (default Hann).
func WithAnalysisWindow(t window.Type) SearchOption {
	return func(cfg *searchConfig) error {
		if !t.Valid() {
			return fmt.Errorf("%w: window type %d", ErrInvalidConfig, int(t))
		}

		cfg.window = t

		return nil
	}
}

// WithRefinePasses sets how many +/-1 coordinate passes polish closed-form
// coefficients (default 4, 0 disables).
func WithRefinePasses(n int) SearchOption {
	return func(cfg *searchConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: refine passes must be >= 0: %d", ErrInvalidConfig, n)
		}

		cfg.refinePasses = n

		return nil
	}
}

// WithOnProgress sets a callback invoked as exhaustive search advances.
func WithOnProgress(fn ProgressFunc) SearchOption {
	return func(cfg *searchConfig) error {
		cfg.onProgress = fn
		return nil
	}
}
