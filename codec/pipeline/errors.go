package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-mocap/anim/skeleton"
	"github.com/cwbudde/algo-mocap/codec/predict"
)

var (
	ErrInvalidConfig = errors.New("pipeline: invalid configuration")
	ErrMalformed     = fmt.Errorf("pipeline: malformed encoding: %w", predict.ErrMalformedStream)
)

// ChannelError reports a failure while coding one channel.
type ChannelError struct {
	Ref skeleton.ChannelRef
	Err error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("pipeline: channel %d (%s): %v", e.Ref.Index, e.Ref, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }
