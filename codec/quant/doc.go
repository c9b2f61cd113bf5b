// Package quant maps floating-point channel curves onto a fixed-width
// unsigned integer range and back.
//
// A channel is scanned for its minimum and span (max - min); every sample is
// then mapped to
//
//	floor((sample - min) / span * (2^bits - 1))
//
// and reconstructed as min + code / (2^bits - 1) * span. The default floor
// mapping is biased: reconstruction error can reach one full step
// span / (2^bits - 1), twice that of a rounding quantizer. It is kept for
// compatibility with existing streams; [WithRounding]([RoundNearest]) is
// available for new data.
//
// A constant channel has span 0, quantizes to all-zero codes and is
// reconstructed exactly.
package quant
