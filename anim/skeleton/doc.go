// Package skeleton models a motion-capture joint hierarchy and the
// frame-major sample matrix that drives it.
//
// Every channel in a skeleton has a canonical index: the joint's own channels
// in declared order, then each child subtree in declared order. End sites
// carry no channels. [Flatten] computes that order once so both directions of
// the codec agree on it:
//
//	channels, refs, err := skeleton.Extract(anim)  // frame-major -> channel-major
//	frames, err := skeleton.Assemble(anim.Root, len(anim.Frames), channels)  // and back
//
// The index is not stored anywhere, so changing the traversal is a breaking
// format change.
//
// A joint has either child joints or a terminal end-site offset, never both.
// [Children] is a sealed interface with exactly those two variants, [Joints]
// and [EndSite].
package skeleton
