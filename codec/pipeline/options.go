package pipeline

import (
	"fmt"
	"log"
	"runtime"

	"github.com/cwbudde/algo-mocap/codec/predict"
	"github.com/cwbudde/algo-mocap/codec/quant"
)

const (
	defaultBits      = 8
	defaultMode      = ModeDelta
	defaultTapOrder  = 2
	defaultCoeffBits = 8
)

// Mode selects how quantized codes are turned into residuals.
type Mode int

const (
	// ModeDelta stores the difference from the previous code.
	ModeDelta Mode = iota
	// ModePredictive searches fixed-point predictor coefficients per channel.
	ModePredictive
	// ModeVerbatim stores the codes unchanged.
	ModeVerbatim
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeDelta && m <= ModeVerbatim
}

func (m Mode) String() string {
	switch m {
	case ModeDelta:
		return "delta"
	case ModePredictive:
		return "predictive"
	case ModeVerbatim:
		return "verbatim"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ProgressFunc receives the number of finished channels out of total. It is
// called from worker goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// Option configures an [Encoder].
type Option func(*config) error

type config struct {
	bits          int
	rounding      quant.Rounding
	mode          Mode
	tapOrder      int
	coeffBits     int
	strategy      predict.Strategy
	maxSearchBits int
	workers       int
	searchWorkers int
	logger        *log.Logger
	onProgress    ProgressFunc
}

func defaultConfig() config {
	return config{
		bits:          defaultBits,
		rounding:      quant.RoundFloor,
		mode:          defaultMode,
		tapOrder:      defaultTapOrder,
		coeffBits:     defaultCoeffBits,
		strategy:      predict.StrategyExhaustive,
		maxSearchBits: 16,
		workers:       runtime.GOMAXPROCS(0),
	}
}

// WithBits sets the quantization width in bits (default 8).
func WithBits(bits int) Option {
	return func(cfg *config) error {
		cfg.bits = bits
		return nil
	}
}

// WithRounding sets the quantizer rounding (default floor).
func WithRounding(r quant.Rounding) Option {
	return func(cfg *config) error {
		cfg.rounding = r
		return nil
	}
}

// WithMode sets the residual mode (default [ModeDelta]).
func WithMode(m Mode) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return fmt.Errorf("%w: mode %d", ErrInvalidConfig, int(m))
		}

		cfg.mode = m

		return nil
	}
}

// WithTapOrder sets the predictor length for [ModePredictive] (default 2).
func WithTapOrder(n int) Option {
	return func(cfg *config) error {
		cfg.tapOrder = n
		return nil
	}
}

// WithCoeffBits sets the coefficient width for [ModePredictive] (default 8).
// It is validated in every mode.
func WithCoeffBits(bits int) Option {
	return func(cfg *config) error {
		cfg.coeffBits = bits
		return nil
	}
}

// WithStrategy sets the coefficient selection strategy (default exhaustive).
func WithStrategy(s predict.Strategy) Option {
	return func(cfg *config) error {
		cfg.strategy = s
		return nil
	}
}

// WithMaxSearchBits sets the largest exhaustive search accepted (default 16).
func WithMaxSearchBits(bits int) Option {
	return func(cfg *config) error {
		cfg.maxSearchBits = bits
		return nil
	}
}

// WithWorkers sets how many channels are coded concurrently (default
// GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be >= 1: %d", ErrInvalidConfig, n)
		}

		cfg.workers = n

		return nil
	}
}

// WithSearchWorkers sets the goroutines used inside one coefficient search.
// By default a search gets all of GOMAXPROCS when channels run one at a time
// and a single goroutine otherwise.
func WithSearchWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: search workers must be >= 1: %d", ErrInvalidConfig, n)
		}

		cfg.searchWorkers = n

		return nil
	}
}

// WithLogger reports per-channel results to l. The encoder is silent by
// default.
func WithLogger(l *log.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// WithOnProgress sets a callback invoked after each channel.
func WithOnProgress(fn ProgressFunc) Option {
	return func(cfg *config) error {
		cfg.onProgress = fn
		return nil
	}
}
