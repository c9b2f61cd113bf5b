package predict

import "fmt"

const (
	MinCoeffBits = 1
	MaxCoeffBits = 8
	MaxTapOrder  = 64

	// DeltaCoeffBits is the fixed-point width recorded for delta streams.
	DeltaCoeffBits = 8
)

// ValidateCoeffBits checks that bits is a supported coefficient width.
func ValidateCoeffBits(bits int) error {
	if bits < MinCoeffBits || bits > MaxCoeffBits {
		return fmt.Errorf("%w: coefficient bit width must be in [%d, %d]: %d",
			ErrInvalidConfig, MinCoeffBits, MaxCoeffBits, bits)
	}

	return nil
}

// ValidateTapOrder checks that order is a supported predictor length.
func ValidateTapOrder(order int) error {
	if order < 0 || order > MaxTapOrder {
		return fmt.Errorf("%w: tap order must be in [0, %d]: %d", ErrInvalidConfig, MaxTapOrder, order)
	}

	return nil
}

// SignExtend interprets the low bits of code as a two's-complement value.
func SignExtend(code uint8, bits int) int8 {
	mask := uint8(1<<bits - 1)
	sign := uint8(1) << (bits - 1)

	return int8(int(code&mask^sign) - int(sign))
}

// Code returns the bits-wide unsigned code of coefficient v.
func Code(v int8, bits int) uint8 {
	return uint8(v) & uint8(1<<bits-1)
}

// CoeffRange returns the smallest and largest coefficient representable in
// bits.
func CoeffRange(bits int) (lo, hi int8) {
	half := 1 << (bits - 1)

	return int8(-half), int8(half - 1)
}

// Unit returns the fixed-point value of 1.0, 2^(bits-1).
func Unit(bits int) int32 {
	return 1 << (bits - 1)
}

// Real converts a fixed-point coefficient to its real value.
func Real(v int8, bits int) float64 {
	return float64(v) / float64(Unit(bits))
}

// Pack returns the packed enumeration index of coeffs.
func Pack(coeffs []int8, bits int) uint64 {
	var packed uint64
	for k, c := range coeffs {
		packed |= uint64(Code(c, bits)) << (k * bits)
	}

	return packed
}

// unpack expands a packed index into sign-extended coefficients.
func unpack(packed uint64, bits int, dst []int32) {
	mask := uint64(1)<<bits - 1
	for k := range dst {
		code := uint8(packed >> (k * bits) & mask)
		dst[k] = int32(SignExtend(code, bits))
	}
}
