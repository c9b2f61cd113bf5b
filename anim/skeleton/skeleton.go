package skeleton

import (
	"fmt"
	"math"
)

// Vec3 is a static 3D offset.
type Vec3 struct {
	X, Y, Z float64
}

// Children is the sealed sum of the two joint shapes: [Joints] or [EndSite].
type Children interface {
	isChildren()
}

// Joints is a non-empty ordered list of child joints.
type Joints []*Node

// EndSite terminates a chain with a fixed offset and no channels below it.
type EndSite struct {
	Offset Vec3
}

func (Joints) isChildren()  {}
func (EndSite) isChildren() {}

// Node is one joint of the hierarchy.
type Node struct {
	Name     string
	Offset   Vec3
	Channels []ChannelType
	Children Children
}

// Animation is a skeleton plus its frame-major sample matrix.
// Frames[f][c] holds frame f of the channel with canonical index c.
type Animation struct {
	Root      *Node
	FrameTime float64 // seconds per frame
	Frames    [][]float64
}

// FrameCount returns the number of frames.
func (a *Animation) FrameCount() int {
	return len(a.Frames)
}

// Validate checks the tree shape and that the matrix matches it.
func (a *Animation) Validate() error {
	if a.FrameTime <= 0 || math.IsNaN(a.FrameTime) || math.IsInf(a.FrameTime, 0) {
		return fmt.Errorf("%w: %v", ErrFrameTime, a.FrameTime)
	}

	count, err := ChannelCount(a.Root)
	if err != nil {
		return err
	}

	if len(a.Frames) == 0 {
		return ErrNoFrames
	}

	for f, row := range a.Frames {
		if len(row) != count {
			return fmt.Errorf("%w: frame %d has %d values, skeleton has %d channels",
				ErrRowLength, f, len(row), count)
		}
	}

	return nil
}

// Clone returns a deep copy of the subtree rooted at n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		Name:     n.Name,
		Offset:   n.Offset,
		Channels: append([]ChannelType(nil), n.Channels...),
	}

	switch c := n.Children.(type) {
	case Joints:
		joints := make(Joints, len(c))
		for i, child := range c {
			joints[i] = Clone(child)
		}

		out.Children = joints
	case EndSite:
		out.Children = c
	case nil:
	}

	return out
}
