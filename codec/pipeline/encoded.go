package pipeline

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-mocap/anim/skeleton"
	"github.com/cwbudde/algo-mocap/codec/export"
	"github.com/cwbudde/algo-mocap/codec/predict"
	"github.com/cwbudde/algo-mocap/codec/quant"
	"github.com/cwbudde/algo-mocap/stats/residual"
)

// EncodedChannel is one coded channel: what the decoder needs plus residual
// statistics.
type EncodedChannel struct {
	Ref    skeleton.ChannelRef
	Range  quant.Range
	Bits   int
	Stream predict.Stream
	Stats  residual.Stats
}

func (c EncodedChannel) codes(frames int) ([]uint16, error) {
	return predict.DecodeExpect(c.Stream, frames)
}

func (c EncodedChannel) decode(frames int) ([]float64, error) {
	codes, err := c.codes(frames)
	if err != nil {
		return nil, err
	}

	return quant.Dequantize(quant.Channel{Range: c.Range, Bits: c.Bits, Codes: codes})
}

// Encoded is a coded animation. Channels are in canonical order.
type Encoded struct {
	Root       *skeleton.Node
	FrameTime  float64
	FrameCount int
	Channels   []EncodedChannel
}

func (enc *Encoded) validate() error {
	if enc == nil {
		return fmt.Errorf("%w: nil encoding", ErrMalformed)
	}

	refs, err := skeleton.Flatten(enc.Root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if len(refs) != len(enc.Channels) {
		return fmt.Errorf("%w: %d channels, skeleton has %d", ErrMalformed, len(enc.Channels), len(refs))
	}

	for i, ch := range enc.Channels {
		if ch.Ref.Index != i {
			return fmt.Errorf("%w: channel %d stored at position %d", ErrMalformed, ch.Ref.Index, i)
		}
	}

	if enc.FrameCount < 1 {
		return fmt.Errorf("%w: %d frames", ErrMalformed, enc.FrameCount)
	}

	return nil
}

// Residuals returns the residual stream of every channel.
func (enc *Encoded) Residuals() [][]int16 {
	out := make([][]int16, len(enc.Channels))
	for i, ch := range enc.Channels {
		out[i] = ch.Stream.Residuals
	}

	return out
}

// Codes decodes the quantized codes of every channel.
func (enc *Encoded) Codes() ([][]uint16, error) {
	out := make([][]uint16, len(enc.Channels))

	for i, ch := range enc.Channels {
		codes, err := ch.codes(enc.FrameCount)
		if err != nil {
			return nil, &ChannelError{Ref: ch.Ref, Err: err}
		}

		out[i] = codes
	}

	return out, nil
}

// Samples decodes and dequantizes every channel.
func (enc *Encoded) Samples() ([][]float64, error) {
	out := make([][]float64, len(enc.Channels))

	for i, ch := range enc.Channels {
		samples, err := ch.decode(enc.FrameCount)
		if err != nil {
			return nil, &ChannelError{Ref: ch.Ref, Err: err}
		}

		out[i] = samples
	}

	return out, nil
}

// Export writes the CSV and raw dumps selected by mode.
func (enc *Encoded) Export(mode export.Mode, csv, raw io.Writer, opts ...export.Option) error {
	return export.Export(enc, mode, csv, raw, opts...)
}

// Summary aggregates the residual statistics of a clip.
type Summary struct {
	Channels   int
	Frames     int
	Residuals  residual.Stats // over all channels together
	ByChannel  int            // sum of per-channel entropy estimates, bytes
	Predictive int            // channels using searched coefficients
}

// Summary returns aggregate statistics over all channels.
func (enc *Encoded) Summary() Summary {
	acc := residual.NewAccumulator()
	s := Summary{Channels: len(enc.Channels), Frames: enc.FrameCount}

	for _, ch := range enc.Channels {
		acc.Update(ch.Stream.Residuals)
		s.ByChannel += ch.Stats.EstimatedBytes()

		if ch.Stream.Kind == predict.KindPredictive && ch.Stream.TapOrder > 0 {
			s.Predictive++
		}
	}

	s.Residuals = acc.Result()

	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d channels x %d frames: sse=%d peak=%d width=%d bits, entropy %.3f bits/residual, ~%d bytes (%d per-channel)",
		s.Channels, s.Frames, s.Residuals.SumSquares, s.Residuals.Peak, s.Residuals.MinBits,
		s.Residuals.Entropy, s.Residuals.EstimatedBytes(), s.ByChannel)
}
