// Package sink provides output format renderers for card stack frames.
//
// # Overview
//
// A "sink" transforms computed [stack.Frame] values into a final output
// format. This package provides renderers for:
//
//   - SVG: Scalable vector graphics, one filmstrip panel per frame
//   - JSON: Frame data export for external tools
//   - YAML: The same document as JSON, for human editing
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (rsvg-convert or the built-in rasterizer)
//
// # SVG Output
//
//	svg := sink.RenderSVG(frames,
//	    sink.WithStyle(handdrawn.New(seed)),
//	    sink.WithColumns(4),
//	    sink.WithCaptions(),
//	)
//
// Cards are painted back to front (ascending z-index) with their scale and
// opacity applied as a group transform, so styles draw every card at its
// unscaled size centered on the origin.
//
// # PNG Output
//
// [RenderPNG] converts the SVG with rsvg-convert when it is installed and
// otherwise rasterizes the frames directly. [WithRasterizer] forces either
// path.
//
// [stack.Frame]: github.com/matzehuels/cardstack/pkg/stack.Frame
package sink
