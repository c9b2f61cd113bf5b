package skeleton

import "errors"

var (
	ErrNilRoot         = errors.New("skeleton: nil root joint")
	ErrMissingChildren = errors.New("skeleton: joint has neither child joints nor an end site")
	ErrEmptyJoints     = errors.New("skeleton: child joint list is empty")
	ErrInvalidChannel  = errors.New("skeleton: invalid channel type")
	ErrNoFrames        = errors.New("skeleton: animation has no frames")
	ErrRowLength       = errors.New("skeleton: frame row length does not match channel count")
	ErrChannelCount    = errors.New("skeleton: channel count does not match skeleton")
	ErrFrameCount      = errors.New("skeleton: channels have different frame counts")
	ErrFrameTime       = errors.New("skeleton: frame time must be > 0 and finite")
)
