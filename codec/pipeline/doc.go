// Package pipeline runs the full channel codec over an animation:
// extract in canonical order, quantize, predict, and the exact reverse.
//
// Channels are independent, so [Encoder.Encode] and [Encoder.Decode] process
// them in a bounded pool of goroutines. Results are placed by canonical index
// and do not depend on scheduling or worker count.
//
// The default configuration is 8-bit floor quantization with delta coding.
// [ModePredictive] searches fixed-point coefficients per channel (see
// package predict) and [ModeVerbatim] stores the codes as residuals.
package pipeline
