package predict

import "errors"

var (
	ErrInvalidConfig   = errors.New("predict: invalid configuration")
	ErrSearchTooLarge  = errors.New("predict: coefficient search space too large")
	ErrMalformedStream = errors.New("predict: malformed stream")
	ErrOverflow        = errors.New("predict: residual exceeds int16 range")
)
