package testutil

import "math/rand"

// Codes converts a quantized curve literal into the uint16 representation
// used by the codecs.
func Codes(values ...int) []uint16 {
	out := make([]uint16, len(values))
	for i, v := range values {
		out[i] = uint16(v)
	}
	return out
}

// RandomCodes returns length codes uniformly drawn from [0, 2^bits-1].
func RandomCodes(seed int64, bits, length int) []uint16 {
	rng := rand.New(rand.NewSource(seed))
	limit := 1 << bits
	out := make([]uint16, length)
	for i := range out {
		out[i] = uint16(rng.Intn(limit))
	}
	return out
}
