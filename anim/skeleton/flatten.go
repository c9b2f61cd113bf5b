package skeleton

import "fmt"

// ChannelRef locates one channel in the canonical order.
type ChannelRef struct {
	Index int         // canonical column in the frame matrix
	Joint string      // owning joint name
	Slot  int         // position within the joint's channel list
	Depth int         // joint depth, root is 0
	Type  ChannelType // driven axis
}

// String returns "Joint.Token", e.g. "Hips.Xposition".
func (r ChannelRef) String() string {
	return r.Joint + "." + r.Type.String()
}

// Walk visits every joint depth-first in declared order, parents before
// children. It fails on a joint whose children are neither [Joints] nor
// [EndSite], or whose [Joints] list is empty.
func Walk(root *Node, fn func(n *Node, depth int) error) error {
	if root == nil {
		return ErrNilRoot
	}

	return walk(root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) error) error {
	if n == nil {
		return ErrNilRoot
	}

	if err := fn(n, depth); err != nil {
		return err
	}

	switch c := n.Children.(type) {
	case Joints:
		if len(c) == 0 {
			return fmt.Errorf("%w: joint %q", ErrEmptyJoints, n.Name)
		}

		for _, child := range c {
			if err := walk(child, depth+1, fn); err != nil {
				return err
			}
		}

		return nil
	case EndSite:
		return nil
	default:
		return fmt.Errorf("%w: joint %q", ErrMissingChildren, n.Name)
	}
}

// Flatten returns one descriptor per channel in canonical order.
func Flatten(root *Node) ([]ChannelRef, error) {
	var refs []ChannelRef

	err := Walk(root, func(n *Node, depth int) error {
		for slot, typ := range n.Channels {
			if !typ.Valid() {
				return fmt.Errorf("%w: joint %q slot %d: %d", ErrInvalidChannel, n.Name, slot, int(typ))
			}

			refs = append(refs, ChannelRef{
				Index: len(refs),
				Joint: n.Name,
				Slot:  slot,
				Depth: depth,
				Type:  typ,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return refs, nil
}

// ChannelCount returns the total number of channels in the tree.
func ChannelCount(root *Node) (int, error) {
	refs, err := Flatten(root)
	if err != nil {
		return 0, err
	}

	return len(refs), nil
}

// Extract validates anim and returns its samples channel-major:
// out[c][f] == anim.Frames[f][c], c being the canonical index.
func Extract(anim *Animation) ([][]float64, []ChannelRef, error) {
	if err := anim.Validate(); err != nil {
		return nil, nil, err
	}

	refs, err := Flatten(anim.Root)
	if err != nil {
		return nil, nil, err
	}

	frames := len(anim.Frames)
	out := make([][]float64, len(refs))

	for _, ref := range refs {
		samples := make([]float64, frames)
		for f, row := range anim.Frames {
			samples[f] = row[ref.Index]
		}

		out[ref.Index] = samples
	}

	return out, refs, nil
}

// Assemble is the inverse of [Extract]: it writes channel-major samples back
// into a frames-row matrix using the canonical order of root.
func Assemble(root *Node, frames int, channels [][]float64) ([][]float64, error) {
	if frames < 1 {
		return nil, ErrNoFrames
	}

	refs, err := Flatten(root)
	if err != nil {
		return nil, err
	}

	if len(channels) != len(refs) {
		return nil, fmt.Errorf("%w: got %d, skeleton has %d", ErrChannelCount, len(channels), len(refs))
	}

	for _, ref := range refs {
		if len(channels[ref.Index]) != frames {
			return nil, fmt.Errorf("%w: channel %s has %d frames, want %d",
				ErrFrameCount, ref, len(channels[ref.Index]), frames)
		}
	}

	out := make([][]float64, frames)
	for f := range out {
		row := make([]float64, len(refs))
		for _, ref := range refs {
			row[ref.Index] = channels[ref.Index][f]
		}

		out[f] = row
	}

	return out, nil
}
