// Command lpcinfo prints the cost and effect of fixed-point predictor
// configurations on synthetic channel curves.
//
// Usage:
//
//	lpcinfo [flags] [curve-name ...]
//
// Without arguments it analyzes every known curve.
//
// Examples:
//
//	lpcinfo motion
//	lpcinfo -bits 16 -taps 1,2 -coeff-bits 4,8 sine ramp
//	lpcinfo -strategy auto -taps 4,8,16 motion
//	lpcinfo -rig -frames 240
//	lpcinfo -list
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-mocap/anim/skeleton"
	"github.com/cwbudde/algo-mocap/codec/pipeline"
	"github.com/cwbudde/algo-mocap/codec/predict"
	"github.com/cwbudde/algo-mocap/codec/quant"
	"github.com/cwbudde/algo-mocap/internal/curve"
	"github.com/cwbudde/algo-mocap/stats/residual"
)

type curveEntry struct {
	name string
	gen  func(seed int64, frames int) []float64
}

var registry = []curveEntry{
	{"motion", curve.Motion},
	{"sine", func(_ int64, frames int) []float64 { return curve.Sine(3, frames, 45, frames) }},
	{"ramp", func(_ int64, frames int) []float64 { return curve.Ramp(-90, 180/float64(max(frames-1, 1)), frames) }},
	{"noise", func(seed int64, frames int) []float64 { return curve.Noise(seed, 30, frames) }},
	{"constant", func(_ int64, frames int) []float64 { return curve.Constant(12.5, frames) }},
}

var strategies = map[string]predict.Strategy{
	"exhaustive":      predict.StrategyExhaustive,
	"autocorrelation": predict.StrategyAutocorrelation,
	"auto":            predict.StrategyAuto,
}

func main() {
	frames := flag.Int("frames", 600, "frames per curve")
	bits := flag.Int("bits", 12, "quantization width in bits")
	taps := flag.String("taps", "0,1,2,3", "comma-separated predictor tap orders")
	coeffBits := flag.String("coeff-bits", "4,6,8", "comma-separated coefficient widths")
	strategy := flag.String("strategy", "exhaustive", "coefficient search: exhaustive, autocorrelation or auto")
	maxSearch := flag.Int("max-search-bits", 16, "largest exhaustive search, in bits of coefficient space")
	seed := flag.Int64("seed", 1, "seed for random curves")
	rig := flag.Bool("rig", false, "encode a synthetic rig with every pipeline mode instead")
	list := flag.Bool("list", false, "list available curve names")
	verbose := flag.Bool("v", false, "log per-channel results in -rig mode")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lpcinfo [flags] [curve-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints search cost and residual statistics of fixed-point predictors.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, analyzes every curve.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, e := range registry {
			fmt.Println(e.name)
		}

		return
	}

	strat, ok := strategies[strings.ToLower(*strategy)]
	if !ok {
		log.Fatalf("unknown strategy %q", *strategy)
	}

	q, err := quant.NewQuantizer(quant.WithBits(*bits))
	if err != nil {
		log.Fatalf("quantizer: %v", err)
	}

	if *rig {
		var logger *log.Logger
		if *verbose {
			logger = log.New(os.Stderr, "", 0)
		}

		printRig(q.Bits(), *frames, *seed, logger)

		return
	}

	tapOrders, err := parseList(*taps)
	if err != nil {
		log.Fatalf("-taps: %v", err)
	}

	widths, err := parseList(*coeffBits)
	if err != nil {
		log.Fatalf("-coeff-bits: %v", err)
	}

	entries := resolveEntries(flag.Args())
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching curves\n")
		os.Exit(1)
	}

	opts := []predict.SearchOption{predict.WithStrategy(strat), predict.WithMaxSearchBits(*maxSearch)}

	for _, e := range entries {
		ch, err := q.Quantize(e.gen(*seed, *frames))
		if err != nil {
			log.Fatalf("%s: %v", e.name, err)
		}

		fmt.Printf("%s: %d frames, %d-bit codes, range [%.4f, %.4f], step %.6f\n",
			e.name, len(ch.Codes), ch.Bits, ch.Range.Min, ch.Range.Min+ch.Range.Span, ch.Range.Step(ch.Bits))
		printAnalysis(ch.Codes, tapOrders, widths, opts)
		fmt.Println()
	}
}

func parseList(s string) ([]int, error) {
	var out []int

	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}

		out = append(out, n)
	}

	slices.Sort(out)

	return slices.Compact(out), nil
}

func resolveEntries(names []string) []curveEntry {
	if len(names) == 0 {
		return registry
	}

	var result []curveEntry

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))

		i := slices.IndexFunc(registry, func(e curveEntry) bool { return e.name == name })
		if i < 0 {
			fmt.Fprintf(os.Stderr, "warning: unknown curve %q (use -list to see available)\n", name)
			continue
		}

		result = append(result, registry[i])
	}

	return result
}

type row struct {
	label    string
	bits     int
	count    uint64
	strategy string
	coeffs   string
	stats    residual.Stats
	err      error
}

func printAnalysis(codes []uint16, taps, widths []int, opts []predict.SearchOption) {
	ctx := context.Background()

	var rows []row

	if s, err := predict.EncodeDelta(codes); err != nil {
		rows = append(rows, row{label: "delta", err: err})
	} else {
		rows = append(rows, row{label: "delta", count: 1, strategy: "fixed", coeffs: "[unit]", stats: residual.Calculate(s.Residuals)})
	}

	for _, tap := range taps {
		for _, cb := range widths {
			r := analyze(ctx, codes, tap, cb, opts)
			rows = append(rows, r)

			// Every width gives the same stream without taps.
			if tap == 0 {
				break
			}
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Predictor\tSpace [bits]\tCandidates\tStrategy\tCoefficients\tSSE\tPeak\tWidth\tEntropy\tEst. bytes\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range rows {
		var err error
		if r.err != nil {
			_, err = fmt.Fprintf(tw, "%s\t%d\t%d\t-\t-\t%v\n", r.label, r.bits, r.count, r.err)
		} else {
			_, err = fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%d\t%d\t%d\t%.3f\t%d\n",
				r.label, r.bits, r.count, r.strategy, r.coeffs,
				r.stats.SumSquares, r.stats.Peak, r.stats.MinBits, r.stats.Entropy, r.stats.EstimatedBytes())
		}

		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func analyze(ctx context.Context, codes []uint16, tap, cb int, opts []predict.SearchOption) row {
	bits, count := predict.SearchSpace(tap, cb)
	r := row{label: fmt.Sprintf("tap %d x %d bit", tap, cb), bits: bits, count: count}

	s, err := predict.NewSearcher(tap, cb, opts...)
	if err != nil {
		r.err = err
		return r
	}

	stream, err := s.Encode(ctx, codes)
	if err != nil {
		r.err = err
		return r
	}

	values := make([]string, len(stream.Coefficients))
	for k, c := range stream.Coefficients {
		values[k] = strconv.FormatFloat(predict.Real(c, cb), 'f', 3, 64)
	}

	r.strategy = s.Strategy().String()
	r.coeffs = "[" + strings.Join(values, " ") + "]"
	r.stats = residual.Calculate(stream.Residuals)

	return r
}

// printRig encodes a small skeleton whose channels use every registered
// curve and prints the pipeline summary per mode.
func printRig(bits, frames int, seed int64, logger *log.Logger) {
	root := &skeleton.Node{
		Name: "Hips",
		Channels: []skeleton.ChannelType{
			skeleton.TranslationX, skeleton.TranslationY, skeleton.TranslationZ,
			skeleton.RotationZ, skeleton.RotationX, skeleton.RotationY,
		},
		Children: skeleton.Joints{{
			Name:     "Chest",
			Offset:   skeleton.Vec3{Y: 10},
			Channels: []skeleton.ChannelType{skeleton.RotationZ, skeleton.RotationX, skeleton.RotationY},
			Children: skeleton.EndSite{Offset: skeleton.Vec3{Y: 5}},
		}},
	}

	count, err := skeleton.ChannelCount(root)
	if err != nil {
		log.Fatalf("rig: %v", err)
	}

	curves := make([][]float64, count)
	for c := range curves {
		curves[c] = registry[c%len(registry)].gen(seed+int64(c), frames)
	}

	matrix, err := skeleton.Assemble(root, frames, curves)
	if err != nil {
		log.Fatalf("rig: %v", err)
	}

	anim := &skeleton.Animation{Root: root, FrameTime: 1.0 / 30, Frames: matrix}

	modes := []struct {
		name string
		opts []pipeline.Option
	}{
		{"verbatim", []pipeline.Option{pipeline.WithMode(pipeline.ModeVerbatim)}},
		{"delta", []pipeline.Option{pipeline.WithMode(pipeline.ModeDelta)}},
		{"predictive 2x8", []pipeline.Option{pipeline.WithMode(pipeline.ModePredictive)}},
		{"predictive 8x8", []pipeline.Option{
			pipeline.WithMode(pipeline.ModePredictive),
			pipeline.WithTapOrder(8),
			pipeline.WithStrategy(predict.StrategyAutocorrelation),
		}},
	}

	for _, m := range modes {
		opts := append([]pipeline.Option{pipeline.WithBits(bits), pipeline.WithLogger(logger)}, m.opts...)

		e, err := pipeline.NewEncoder(opts...)
		if err != nil {
			fmt.Printf("%-16s %v\n", m.name, err)
			continue
		}

		enc, err := e.Encode(context.Background(), anim)
		if err != nil {
			fmt.Printf("%-16s %v\n", m.name, err)
			continue
		}

		fmt.Printf("%-16s %v\n", m.name, enc.Summary())
	}
}
