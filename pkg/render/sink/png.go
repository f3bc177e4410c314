package sink

import (
	"context"

	"github.com/matzehuels/cardstack/pkg/render"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// Rasterizer selects how PNG output is produced.
type Rasterizer string

const (
	// RasterAuto uses rsvg-convert when installed, otherwise the native rasterizer.
	RasterAuto Rasterizer = "auto"
	// RasterRsvg always converts the SVG with rsvg-convert.
	RasterRsvg Rasterizer = "rsvg"
	// RasterNative draws the frames directly without external tools.
	RasterNative Rasterizer = "native"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts    []SVGOption
	scale      float64
	rasterizer Rasterizer
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
// The native rasterizer honours columns, captions, background and labels.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRasterizer selects the rasterizer (default [RasterAuto]).
func WithRasterizer(rz Rasterizer) PNGOption {
	return func(r *pngRenderer) { r.rasterizer = rz }
}

// RenderPNG renders the frames as PNG.
func RenderPNG(ctx context.Context, frames []stack.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, rasterizer: RasterAuto}
	for _, opt := range opts {
		opt(&r)
	}

	switch r.rasterizer {
	case RasterNative:
		return rasterize(frames, r.scale, newSVGRenderer(r.svgOpts...))
	case RasterAuto:
		if !render.Available() {
			return rasterize(frames, r.scale, newSVGRenderer(r.svgOpts...))
		}
	}
	svg := RenderSVG(frames, r.svgOpts...)
	return render.ToPNG(ctx, svg, r.scale)
}
