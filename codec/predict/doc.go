// Package predict implements reversible fixed-point linear prediction over
// quantized channel codes.
//
// For every frame the predictor forms
//
//	prediction = (sum_k window[k] * coeff[k]) >> (coeffBits - 1)
//
// where window[0] is the previous value, window[1] the one before it, and so on,
// with zeros before the first frame. The stored residual is value - prediction.
// The shift is arithmetic (it floors negative sums) on both sides, so [Decode]
// replays exactly the arithmetic of [Encode] and reconstruction is lossless.
//
// Coefficients are coeffBits-wide two's-complement codes, representing reals
// in [-1, 1) with scale 2^(coeffBits-1). [Searcher] picks them by exhaustive
// minimum squared error over all 2^(tapOrder*coeffBits) vectors, split across
// workers as a map-reduce with a final minimum reduction. Ties go to the lowest
// packed vector, coefficient k occupying bits [k*coeffBits, (k+1)*coeffBits).
// The search is exponential; [SearchSpace] reports its size and searches above
// the configured limit fail with [ErrSearchTooLarge] unless the closed-form
// [StrategyAutocorrelation] estimator is selected.
//
// Delta coding ([EncodeDelta]) is the order-1 predictor with the fixed unit
// coefficient 2^(coeffBits-1). That value lies outside the signed range, so
// it is never searched or stored.
//
// Residuals are int16. A residual outside that range is reported as
// [ErrOverflow], never wrapped.
package predict
