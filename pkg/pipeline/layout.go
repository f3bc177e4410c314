package pipeline

import (
	"github.com/matzehuels/cardstack/pkg/stack"
)

// =============================================================================
// Layout
// =============================================================================

// ComputeFrames lays out one frame per offset. It is pure: the same options
// always give the same frames.
func ComputeFrames(opts Options) []stack.Frame {
	offsets := opts.FrameOffsets()
	frames := make([]stack.Frame, len(offsets))
	for i, off := range offsets {
		vp := opts.Viewport
		vp.Offset = off
		frames[i] = stack.Compute(opts.Config, vp)
	}
	return frames
}
