package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/cardstack/pkg/render/styles"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	columns    int
	captions   bool
	background bool
	labels     []string
}

// WithStyle sets the card style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithColumns sets the number of panels per row. Zero puts all panels in one row.
func WithColumns(n int) SVGOption { return func(r *svgRenderer) { r.columns = n } }

// WithCaptions prints offset, page and progress under each panel.
func WithCaptions() SVGOption { return func(r *svgRenderer) { r.captions = true } }

// WithBackground fills the canvas instead of leaving it transparent.
func WithBackground() SVGOption { return func(r *svgRenderer) { r.background = true } }

// WithLabels sets card labels by item index. Missing labels fall back to the
// 1-based item number.
func WithLabels(labels []string) SVGOption { return func(r *svgRenderer) { r.labels = labels } }

// RenderSVG renders frames as an SVG filmstrip.
func RenderSVG(frames []stack.Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	fs := newFilmstrip(frames, r.columns, r.captions)
	w, h := fs.size()

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(int(math.Ceil(w)), int(math.Ceil(h)))
	canvas.Title("card stack frames")
	r.style.RenderDefs(canvas)

	if r.background {
		canvas.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h)), "fill:"+styles.BackgroundColor)
	}

	for i, f := range frames {
		x, y := fs.origin(i)
		canvas.Group(fmt.Sprintf(`id="frame-%d"`, i), fmt.Sprintf(`transform="translate(%.2f,%.2f)"`, x, y))
		r.renderFrame(canvas, f)
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderFrame(canvas *svg.SVG, f stack.Frame) {
	v := styles.Viewport{W: f.Viewport.Width, H: f.Viewport.Height, Page: f.CurrentPage, Offset: f.Viewport.Offset}
	if r.captions {
		v.Caption = caption(f)
	}
	r.style.RenderViewport(canvas, v)

	for _, it := range f.PaintOrder() {
		if !it.Visible() {
			continue
		}
		canvas.Group(
			fmt.Sprintf(`class="card" data-index="%d" data-depth="%d"`, it.Index, it.Depth),
			fmt.Sprintf(`transform="translate(%.2f,%.2f) scale(%.5f)"`, it.Center.X, it.Center.Y, it.Scale),
			fmt.Sprintf(`opacity="%.3f"`, it.Opacity),
		)
		r.style.RenderCard(canvas, r.card(it, f.Viewport.ItemCount))
		canvas.Gend()
	}
}

func (r *svgRenderer) card(it stack.ItemAttributes, count int) styles.Card {
	c := styles.Card{
		Index:   it.Index,
		Depth:   it.Depth,
		Count:   count,
		W:       it.Size.Width,
		H:       it.Size.Height,
		Scale:   it.Scale,
		Opacity: it.Opacity,
	}
	if it.Index < len(r.labels) {
		c.Label = r.labels[it.Index]
	}
	return c
}
