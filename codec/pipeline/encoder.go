package pipeline

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-mocap/anim/skeleton"
	"github.com/cwbudde/algo-mocap/codec/predict"
	"github.com/cwbudde/algo-mocap/codec/quant"
	"github.com/cwbudde/algo-mocap/stats/residual"
)

// Encoder holds one codec configuration. It is immutable and safe for
// concurrent use.
type Encoder struct {
	mode       Mode
	quantizer  *quant.Quantizer
	searcher   *predict.Searcher // nil in ModeDelta
	workers    int
	logger     *log.Logger
	onProgress ProgressFunc
}

// NewEncoder validates the configuration and creates an Encoder.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q, err := quant.NewQuantizer(quant.WithBits(cfg.bits), quant.WithRounding(cfg.rounding))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := predict.ValidateCoeffBits(cfg.coeffBits); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := &Encoder{
		mode:       cfg.mode,
		quantizer:  q,
		workers:    cfg.workers,
		logger:     cfg.logger,
		onProgress: cfg.onProgress,
	}

	switch cfg.mode {
	case ModePredictive:
		if cfg.tapOrder < 1 {
			return nil, fmt.Errorf("%w: predictive mode needs tap order >= 1: %d", ErrInvalidConfig, cfg.tapOrder)
		}

		e.searcher, err = predict.NewSearcher(cfg.tapOrder, cfg.coeffBits,
			predict.WithStrategy(cfg.strategy),
			predict.WithMaxSearchBits(cfg.maxSearchBits),
			predict.WithWorkers(searchWorkers(cfg)),
		)
	case ModeVerbatim:
		// Codes are stored as int16 residuals.
		if cfg.bits > 15 {
			return nil, fmt.Errorf("%w: verbatim mode holds at most 15-bit codes: %d", ErrInvalidConfig, cfg.bits)
		}

		e.searcher, err = predict.NewSearcher(0, cfg.coeffBits)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return e, nil
}

func searchWorkers(cfg config) int {
	switch {
	case cfg.searchWorkers > 0:
		return cfg.searchWorkers
	case cfg.workers > 1:
		return 1
	default:
		return runtime.GOMAXPROCS(0)
	}
}

// Mode returns the residual mode.
func (e *Encoder) Mode() Mode { return e.mode }

// Bits returns the quantization width.
func (e *Encoder) Bits() int { return e.quantizer.Bits() }

// Workers returns the number of channels coded concurrently.
func (e *Encoder) Workers() int { return e.workers }

// Encode codes every channel of anim. The first failing channel cancels the
// rest and is returned as a [*ChannelError].
func (e *Encoder) Encode(ctx context.Context, anim *skeleton.Animation) (*Encoded, error) {
	samples, refs, err := skeleton.Extract(anim)
	if err != nil {
		return nil, err
	}

	enc := &Encoded{
		Root:       skeleton.Clone(anim.Root),
		FrameTime:  anim.FrameTime,
		FrameCount: anim.FrameCount(),
		Channels:   make([]EncodedChannel, len(refs)),
	}

	err = e.forEach(ctx, len(refs), func(ctx context.Context, i int) error {
		ch, err := e.encodeChannel(ctx, samples[i])
		if err != nil {
			return &ChannelError{Ref: refs[i], Err: err}
		}

		ch.Ref = refs[i]
		enc.Channels[i] = ch

		e.logf("pipeline: encoded %s: %v, sse=%d, %d bits, ~%d bytes",
			ch.Ref, ch.Stream.Kind, ch.Stats.SumSquares, ch.Stats.MinBits, ch.Stats.EstimatedBytes())

		return nil
	})
	if err != nil {
		return nil, err
	}

	return enc, nil
}

func (e *Encoder) encodeChannel(ctx context.Context, samples []float64) (EncodedChannel, error) {
	q, err := e.quantizer.Quantize(samples)
	if err != nil {
		return EncodedChannel{}, err
	}

	var s predict.Stream

	if e.searcher == nil {
		s, err = predict.EncodeDelta(q.Codes)
	} else {
		s, err = e.searcher.Encode(ctx, q.Codes)
	}

	if err != nil {
		return EncodedChannel{}, err
	}

	return EncodedChannel{
		Range:  q.Range,
		Bits:   q.Bits,
		Stream: s,
		Stats:  residual.Calculate(s.Residuals),
	}, nil
}

// Decode reconstructs the animation from enc. The returned tree is a copy.
func (e *Encoder) Decode(ctx context.Context, enc *Encoded) (*skeleton.Animation, error) {
	return Decode(ctx, enc, WithWorkers(e.workers))
}

// RoundTrip encodes anim and decodes the result.
func (e *Encoder) RoundTrip(ctx context.Context, anim *skeleton.Animation) (*skeleton.Animation, *Encoded, error) {
	enc, err := e.Encode(ctx, anim)
	if err != nil {
		return nil, nil, err
	}

	out, err := e.Decode(ctx, enc)
	if err != nil {
		return nil, nil, err
	}

	return out, enc, nil
}

// Decode reconstructs the animation from enc. Only [WithWorkers] affects
// decoding; the stored streams carry everything else.
func Decode(ctx context.Context, enc *Encoded, opts ...Option) (*skeleton.Animation, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := enc.validate(); err != nil {
		return nil, err
	}

	d := &Encoder{workers: cfg.workers, onProgress: cfg.onProgress}
	channels := make([][]float64, len(enc.Channels))

	err := d.forEach(ctx, len(enc.Channels), func(_ context.Context, i int) error {
		ch := enc.Channels[i]

		samples, err := ch.decode(enc.FrameCount)
		if err != nil {
			return &ChannelError{Ref: ch.Ref, Err: err}
		}

		channels[i] = samples

		return nil
	})
	if err != nil {
		return nil, err
	}

	frames, err := skeleton.Assemble(enc.Root, enc.FrameCount, channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return &skeleton.Animation{
		Root:      skeleton.Clone(enc.Root),
		FrameTime: enc.FrameTime,
		Frames:    frames,
	}, nil
}

// forEach runs fn for indices [0, n) on at most e.workers goroutines. The
// first error cancels the context handed to the remaining calls.
func (e *Encoder) forEach(ctx context.Context, n int, fn func(context.Context, int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
		done     atomic.Int64
	)

	sem := make(chan struct{}, max(e.workers, 1))

loop:
	for i := range n {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break loop
		}

		wg.Go(func() {
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			if err := fn(ctx, i); err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})

				return
			}

			if e.onProgress != nil {
				e.onProgress(int(done.Add(1)), n)
			}
		})
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	return context.Cause(ctx)
}

func (e *Encoder) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
