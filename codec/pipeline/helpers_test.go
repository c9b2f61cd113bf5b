package pipeline

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mocap/anim/skeleton"
	"github.com/cwbudde/algo-mocap/internal/curve"
	"github.com/cwbudde/algo-mocap/internal/testutil"
)

const constantColumn = 2

// testRig is a root with translations and rotations, a spine ending in an end
// site, and a two-joint arm. It has 15 channels.
func testRig() *skeleton.Node {
	rot := func() []skeleton.ChannelType {
		return []skeleton.ChannelType{skeleton.RotationZ, skeleton.RotationX, skeleton.RotationY}
	}

	return &skeleton.Node{
		Name: "Root",
		Channels: []skeleton.ChannelType{
			skeleton.TranslationX, skeleton.TranslationY, skeleton.TranslationZ,
			skeleton.RotationZ, skeleton.RotationX, skeleton.RotationY,
		},
		Children: skeleton.Joints{
			{
				Name:     "Spine",
				Offset:   skeleton.Vec3{Y: 8},
				Channels: rot(),
				Children: skeleton.EndSite{Offset: skeleton.Vec3{Y: 3}},
			},
			{
				Name:     "Arm",
				Offset:   skeleton.Vec3{X: 4},
				Channels: rot(),
				Children: skeleton.Joints{
					{
						Name:     "Hand",
						Offset:   skeleton.Vec3{X: 6},
						Channels: rot(),
						Children: skeleton.EndSite{Offset: skeleton.Vec3{X: 1}},
					},
				},
			},
		},
	}
}

// testAnimation fills each channel with a distinct motion curve;
// one translation channel is held constant.
func testAnimation(frames int) *skeleton.Animation {
	root := testRig()

	count, err := skeleton.ChannelCount(root)
	if err != nil {
		panic(err)
	}

	curves := make([][]float64, count)
	for c := range curves {
		curves[c] = curve.Motion(int64(c+1), frames)
	}

	curves[constantColumn] = curve.Constant(5.5, frames)

	matrix := make([][]float64, frames)
	for f := range matrix {
		row := make([]float64, count)
		for c := range row {
			row[c] = curves[c][f]
		}

		matrix[f] = row
	}

	return &skeleton.Animation{Root: root, FrameTime: 1.0 / 30, Frames: matrix}
}

// requireWithinStep checks every reconstructed sample against the
// quantization bound of its channel.
func requireWithinStep(t *testing.T, enc *Encoded, want, got *skeleton.Animation) {
	t.Helper()

	if len(got.Frames) != len(want.Frames) {
		t.Fatalf("frame count %d, want %d", len(got.Frames), len(want.Frames))
	}

	for _, ch := range enc.Channels {
		tol := testutil.StepTolerance(ch.Range.Step(ch.Bits))
		c := ch.Ref.Index

		for f := range want.Frames {
			if d := math.Abs(got.Frames[f][c] - want.Frames[f][c]); d > tol {
				t.Fatalf("%s frame %d: |%v - %v| = %v > %v", ch.Ref, f, got.Frames[f][c], want.Frames[f][c], d, tol)
			}
		}
	}
}
