package sink

import (
	"context"

	"github.com/matzehuels/cardstack/pkg/render"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// RenderPDF draws the filmstrip as SVG and converts it with rsvg-convert.
// There is no native fallback; without librsvg it fails with UNSUPPORTED.
func RenderPDF(ctx context.Context, frames []stack.Frame, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(frames, opts...))
}
