// Package render provides frame rendering for card stacks.
//
// # Overview
//
// This package turns computed [stack.Frame] values into visual output. It
// provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Output sinks for SVG, PNG, PDF, JSON and YAML (in [sink])
//   - Visual styles for cards (in [styles])
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). [Available] reports whether
// the tool is installed; the PNG sink falls back to its built-in rasterizer
// when it is not.
//
//	svg := sink.RenderSVG(frames, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Filmstrips
//
// Sinks accept a slice of frames and lay them out as a filmstrip: one panel
// per frame, each showing the viewport outline and the visible cards painted
// back to front. A single frame renders as a single panel.
//
// [stack.Frame]: github.com/matzehuels/cardstack/pkg/stack.Frame
// [sink]: github.com/matzehuels/cardstack/pkg/render/sink
// [styles]: github.com/matzehuels/cardstack/pkg/render/styles
package render
