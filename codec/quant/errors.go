package quant

import "errors"

var (
	ErrEmptyChannel  = errors.New("quant: empty channel")
	ErrInvalidConfig = errors.New("quant: invalid configuration")
	ErrNonFinite     = errors.New("quant: non-finite sample")
	ErrCodeRange     = errors.New("quant: code exceeds bit-width range")
)
