package pipeline_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-mocap/anim/skeleton"
	"github.com/cwbudde/algo-mocap/codec/pipeline"
)

func ExampleEncoder_RoundTrip() {
	anim := &skeleton.Animation{
		Root: &skeleton.Node{
			Name:     "Hips",
			Channels: []skeleton.ChannelType{skeleton.TranslationX},
			Children: skeleton.EndSite{Offset: skeleton.Vec3{Y: 1}},
		},
		FrameTime: 1.0 / 30,
		Frames:    [][]float64{{0}, {10}, {20}, {30}},
	}

	e, err := pipeline.NewEncoder(pipeline.WithBits(8), pipeline.WithMode(pipeline.ModeDelta))
	if err != nil {
		panic(err)
	}

	out, enc, err := e.RoundTrip(context.Background(), anim)
	if err != nil {
		panic(err)
	}

	ch := enc.Channels[0]
	fmt.Println(ch.Ref, ch.Stream.Kind, ch.Stream.Residuals)

	for _, row := range out.Frames {
		fmt.Printf("%.3f ", row[0])
	}

	fmt.Println()

	// Output:
	// Hips.Xposition delta [0 85 85 85]
	// 0.000 10.000 20.000 30.000
}
