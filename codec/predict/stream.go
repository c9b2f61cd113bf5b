package predict

import (
	"context"
	"fmt"
)

// Kind tells the decoder which predictor produced a stream.
type Kind uint8

const (
	// KindPredictive streams store TapOrder searched coefficients.
	KindPredictive Kind = iota
	// KindDelta streams use the fixed unit coefficient and store none.
	KindDelta
)

func (k Kind) String() string {
	switch k {
	case KindPredictive:
		return "predictive"
	case KindDelta:
		return "delta"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Stream is an encoded channel: predictor parameters plus one residual per
// frame.
type Stream struct {
	Kind         Kind
	TapOrder     int
	CoeffBits    int
	Coefficients []int8
	Residuals    []int16
}

// Frames returns the number of encoded frames.
func (s Stream) Frames() int {
	return len(s.Residuals)
}

// SumSquares returns the residual energy.
func (s Stream) SumSquares() int64 {
	var sse int64
	for _, r := range s.Residuals {
		sse += int64(r) * int64(r)
	}

	return sse
}

// Validate checks that the stream is internally consistent.
func (s Stream) Validate() error {
	if err := ValidateCoeffBits(s.CoeffBits); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedStream, err)
	}

	if err := ValidateTapOrder(s.TapOrder); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedStream, err)
	}

	if len(s.Residuals) == 0 {
		return fmt.Errorf("%w: no residuals", ErrMalformedStream)
	}

	switch s.Kind {
	case KindDelta:
		if s.TapOrder != 1 || len(s.Coefficients) != 0 {
			return fmt.Errorf("%w: delta stream must have tap order 1 and no stored coefficients, got %d taps, %d coefficients",
				ErrMalformedStream, s.TapOrder, len(s.Coefficients))
		}
	case KindPredictive:
		if len(s.Coefficients) != s.TapOrder {
			return fmt.Errorf("%w: %d coefficients for tap order %d", ErrMalformedStream, len(s.Coefficients), s.TapOrder)
		}

		lo, hi := CoeffRange(s.CoeffBits)
		for k, c := range s.Coefficients {
			if c < lo || c > hi {
				return fmt.Errorf("%w: coefficient %d = %d outside [%d, %d]", ErrMalformedStream, k, c, lo, hi)
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrMalformedStream, uint8(s.Kind))
	}

	return nil
}

func (s Stream) taps() []int32 {
	if s.Kind == KindDelta {
		return []int32{Unit(s.CoeffBits)}
	}

	return widen(s.Coefficients)
}

// Encode searches the coefficients for codes and computes the residuals.
func (s *Searcher) Encode(ctx context.Context, codes []uint16) (Stream, error) {
	res, err := s.Search(ctx, codes)
	if err != nil {
		return Stream{}, err
	}

	residuals, _, err := Residuals(codes, res.Coefficients, s.coeffBits)
	if err != nil {
		return Stream{}, err
	}

	return Stream{
		Kind:         KindPredictive,
		TapOrder:     s.tapOrder,
		CoeffBits:    s.coeffBits,
		Coefficients: res.Coefficients,
		Residuals:    residuals,
	}, nil
}

// Encode is shorthand for NewSearcher followed by [Searcher.Encode].
// A tap order of 0 stores the codes verbatim as residuals.
func Encode(ctx context.Context, codes []uint16, tapOrder, coeffBits int, opts ...SearchOption) (Stream, error) {
	s, err := NewSearcher(tapOrder, coeffBits, opts...)
	if err != nil {
		return Stream{}, err
	}

	return s.Encode(ctx, codes)
}

// EncodeDelta codes each value as the difference from the previous one,
// starting from 0.
func EncodeDelta(codes []uint16) (Stream, error) {
	if len(codes) == 0 {
		return Stream{}, fmt.Errorf("%w: no frames", ErrMalformedStream)
	}

	s := Stream{Kind: KindDelta, TapOrder: 1, CoeffBits: DeltaCoeffBits}

	res, _, err := residuals(codes, s.taps(), uint(s.CoeffBits-1))
	if err != nil {
		return Stream{}, err
	}

	s.Residuals = res

	return s, nil
}

// Residuals runs the predictor with fixed coefficients over codes and returns
// the residuals and their sum of squares.
func Residuals(codes []uint16, coeffs []int8, coeffBits int) ([]int16, int64, error) {
	if err := ValidateCoeffBits(coeffBits); err != nil {
		return nil, 0, err
	}

	return residuals(codes, widen(coeffs), uint(coeffBits-1))
}

// Decode reconstructs the codes of s.
func Decode(s Stream) ([]uint16, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return reconstruct(s.Residuals, s.taps(), uint(s.CoeffBits-1))
}

// DecodeExpect decodes s and additionally requires exactly frames residuals.
func DecodeExpect(s Stream, frames int) ([]uint16, error) {
	if len(s.Residuals) != frames {
		return nil, fmt.Errorf("%w: %d residuals, want %d frames", ErrMalformedStream, len(s.Residuals), frames)
	}

	return Decode(s)
}
