package quant

import (
	"fmt"
	"math"
)

// Range is the observed extent of a channel.
type Range struct {
	Min  float64
	Span float64 // max - min, 0 for a constant channel
}

// Step returns the reconstruction step span / (2^bits - 1).
func (r Range) Step(bits int) float64 {
	return r.Span / float64(MaxCode(bits))
}

// Channel is a quantized curve together with what is needed to reconstruct it.
type Channel struct {
	Range Range
	Bits  int
	Codes []uint16
}

// MaxCode returns 2^bits - 1.
func MaxCode(bits int) uint16 {
	return uint16(1<<bits - 1)
}

// Quantizer maps sample curves to codes of a fixed width.
type Quantizer struct {
	bits     int
	rounding Rounding
	scale    float64
}

// NewQuantizer creates a Quantizer. The default configuration is 8 bits with
// floor rounding.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Quantizer{
		bits:     cfg.bits,
		rounding: cfg.rounding,
		scale:    float64(MaxCode(cfg.bits)),
	}, nil
}

// Bits returns the configured code width.
func (q *Quantizer) Bits() int { return q.bits }

// Rounding returns the configured rounding mode.
func (q *Quantizer) Rounding() Rounding { return q.rounding }

// MaxCode returns the largest code the quantizer emits.
func (q *Quantizer) MaxCode() uint16 { return MaxCode(q.bits) }

// Step returns the reconstruction bound for a channel of range r.
func (q *Quantizer) Step(r Range) float64 { return r.Step(q.bits) }

// Quantize scans samples for their range and maps each one to a code.
func (q *Quantizer) Quantize(samples []float64) (Channel, error) {
	if len(samples) == 0 {
		return Channel{}, ErrEmptyChannel
	}

	lo, hi := samples[0], samples[0]

	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return Channel{}, fmt.Errorf("%w: frame %d: %v", ErrNonFinite, i, s)
		}

		lo = min(lo, s)
		hi = max(hi, s)
	}

	span := hi - lo
	if math.IsInf(span, 0) {
		return Channel{}, fmt.Errorf("%w: range overflows: [%v, %v]", ErrNonFinite, lo, hi)
	}

	codes := make([]uint16, len(samples))
	if span > 0 {
		maxCode := q.MaxCode()
		for i, s := range samples {
			codes[i] = min(maxCode, q.code((s-lo)/span*q.scale))
		}
	}

	return Channel{
		Range: Range{Min: lo, Span: span},
		Bits:  q.bits,
		Codes: codes,
	}, nil
}

func (q *Quantizer) code(scaled float64) uint16 {
	if q.rounding == RoundNearest {
		return uint16(math.Floor(scaled + 0.5))
	}

	return uint16(scaled)
}

// Dequantize reconstructs samples from codes produced with the same width.
func (q *Quantizer) Dequantize(r Range, codes []uint16) ([]float64, error) {
	return dequantize(r, codes, q.bits)
}

// Quantize maps samples to bits-wide codes with floor rounding.
func Quantize(samples []float64, bits int) (Channel, error) {
	q, err := NewQuantizer(WithBits(bits))
	if err != nil {
		return Channel{}, err
	}

	return q.Quantize(samples)
}

// Dequantize reconstructs the samples of ch.
func Dequantize(ch Channel) ([]float64, error) {
	if err := ValidateBits(ch.Bits); err != nil {
		return nil, err
	}

	return dequantize(ch.Range, ch.Codes, ch.Bits)
}

func dequantize(r Range, codes []uint16, bits int) ([]float64, error) {
	if len(codes) == 0 {
		return nil, ErrEmptyChannel
	}

	maxCode := MaxCode(bits)
	scale := float64(maxCode)
	out := make([]float64, len(codes))

	for i, c := range codes {
		if c > maxCode {
			return nil, fmt.Errorf("%w: frame %d: code %d > %d", ErrCodeRange, i, c, maxCode)
		}

		if r.Span == 0 {
			out[i] = r.Min
			continue
		}

		out[i] = r.Min + (float64(c)/scale)*r.Span
	}

	return out, nil
}
