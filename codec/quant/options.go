package quant

import "fmt"

const (
	defaultBits     = 8
	defaultRounding = RoundFloor
	MinBits         = 1
	MaxBits         = 16
)

// Rounding selects how a scaled sample becomes an integer code.
type Rounding int

const (
	// RoundFloor truncates toward zero. This is the stream-compatible mode.
	RoundFloor Rounding = iota
	// RoundNearest rounds half up, halving the worst-case error.
	RoundNearest
)

// Valid reports whether r is a known rounding mode.
func (r Rounding) Valid() bool {
	return r == RoundFloor || r == RoundNearest
}

func (r Rounding) String() string {
	switch r {
	case RoundFloor:
		return "floor"
	case RoundNearest:
		return "nearest"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

type config struct {
	bits     int
	rounding Rounding
}

func defaultConfig() config {
	return config{
		bits:     defaultBits,
		rounding: defaultRounding,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBits sets the code width (1-16, default 8).
func WithBits(bits int) Option {
	return func(cfg *config) error {
		if err := ValidateBits(bits); err != nil {
			return err
		}

		cfg.bits = bits

		return nil
	}
}

// WithRounding sets the rounding mode (default [RoundFloor]).
func WithRounding(r Rounding) Option {
	return func(cfg *config) error {
		if !r.Valid() {
			return fmt.Errorf("%w: rounding mode %d", ErrInvalidConfig, int(r))
		}

		cfg.rounding = r

		return nil
	}
}

// ValidateBits checks that bits is a supported code width.
func ValidateBits(bits int) error {
	if bits < MinBits || bits > MaxBits {
		return fmt.Errorf("%w: bit width must be in [%d, %d]: %d", ErrInvalidConfig, MinBits, MaxBits, bits)
	}

	return nil
}
