package export

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cwbudde/algo-mocap/codec/predict"
)

var (
	ErrInvalidArgument = errors.New("export: invalid argument")
	ErrShortStream     = fmt.Errorf("export: truncated raw stream: %w", predict.ErrMalformedStream)
	ErrOverflow        = errors.New("export: residual does not fit the raw width")
)
