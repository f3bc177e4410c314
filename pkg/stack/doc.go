// Package stack computes the geometry of a horizontally paged card stack.
//
// As the user scrolls, the front card slides out at the speed of the scroll
// while the cards behind it advance, grow and fade in. Given a scroll offset,
// a viewport and a [Config], [Compute] returns the render attributes
// (center, scale, z-order, opacity) of every visible card for one frame.
//
// # Pages and depth
//
// Each item owns one full viewport width of scroll distance. Page i spans
// offsets [i·W, (i+1)·W). The current page p = floor(offset / W) is the
// front-most card (depth 0) and the stack window is [p, min(p+MaxVisible, N)).
// The fractional position inside the page, t = (offset − p·W) / W, drives
// every interpolation.
//
// # Scale policies
//
// Two scale formulas are supported and selected with [Config.Policy]:
//
//   - [PolicyAnchored]: scale(0) = 1 and scale(d) = f^d. Shrunk cards are
//     shifted so that their right edges step out by Spacing.
//   - [PolicySymmetric]: scale(d) = f^(d − MaxVisible/2). Cards are offset by
//     Spacing only.
//
// # Hosts
//
// [Compute] is pure. Hosts that want the "invalidate on change" contract of a
// UI toolkit layout wrap it in a [Layout], which caches the last pass and
// notifies subscribers when the configuration changes. A [Pager] translates
// page navigation into scroll offsets for a host [ScrollHost].
//
//	frame := stack.Compute(stack.DefaultConfig(), stack.Viewport{
//	    Offset: 150, Width: 300, Height: 500, ItemCount: 10,
//	})
//	for _, it := range frame.PaintOrder() {
//	    draw(it.Index, it.Bounds(), it.Opacity)
//	}
package stack
