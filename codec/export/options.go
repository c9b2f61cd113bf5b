package export

import "fmt"

// Field selects the values written to the CSV dump.
type Field int

const (
	// FieldResidual writes the stored residuals (the deltas in delta mode).
	FieldResidual Field = iota
	// FieldCode writes the quantized codes.
	FieldCode
	// FieldSample writes the reconstructed samples.
	FieldSample
)

func (f Field) String() string {
	switch f {
	case FieldResidual:
		return "residual"
	case FieldCode:
		return "code"
	case FieldSample:
		return "sample"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Width selects the encoding of each residual in the raw dump. [Width8]
// stores one byte per residual modulo 2^8 and round-trips delta streams of
// codes up to 8 bits. [WidthInt8] stores one two's-complement byte and rejects
// residuals outside int8. [Width16] stores two little-endian bytes.
type Width int

const (
	Width8    Width = 1
	Width16   Width = 2
	WidthInt8 Width = 3
)

// Valid reports whether w is a supported raw width.
func (w Width) Valid() bool {
	return w == Width8 || w == Width16 || w == WidthInt8
}

// Size returns the bytes per residual, or 0 for an invalid width.
func (w Width) Size() int {
	switch w {
	case Width8, WidthInt8:
		return 1
	case Width16:
		return 2
	default:
		return 0
	}
}

// Mode selects which dumps [Export] writes.
type Mode int

const (
	ModeCSV Mode = iota
	ModeRaw
	ModeBoth
)

// ParseMode maps "csv", "raw" and "both" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "csv":
		return ModeCSV, nil
	case "raw":
		return ModeRaw, nil
	case "both":
		return ModeBoth, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeCSV:
		return "csv"
	case ModeRaw:
		return "raw"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) csv() bool { return m == ModeCSV || m == ModeBoth }
func (m Mode) raw() bool { return m == ModeRaw || m == ModeBoth }

// Option configures [Export].
type Option func(*config) error

type config struct {
	field Field
	width Width
}

func defaultConfig() config {
	return config{field: FieldResidual, width: Width8}
}

// WithField selects the CSV values (default [FieldResidual]).
func WithField(f Field) Option {
	return func(cfg *config) error {
		if f < FieldResidual || f > FieldSample {
			return fmt.Errorf("%w: field %d", ErrInvalidArgument, int(f))
		}

		cfg.field = f

		return nil
	}
}

// WithWidth selects the raw residual width (default [Width8]).
func WithWidth(w Width) Option {
	return func(cfg *config) error {
		if !w.Valid() {
			return fmt.Errorf("%w: raw width %d", ErrInvalidArgument, int(w))
		}

		cfg.width = w

		return nil
	}
}
