package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/cardstack/pkg/render/styles"
	"github.com/matzehuels/cardstack/pkg/stack"
)

const rasterCornerRatio = 0.06

// rasterize draws frames with the same filmstrip geometry as [RenderSVG].
// Cards always use the palette of [styles.Simple]; the outline style leaves
// them unfilled.
func rasterize(frames []stack.Frame, scale float64, r svgRenderer) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	fs := newFilmstrip(frames, r.columns, r.captions)
	w, h := fs.size()

	dc := gg.NewContext(int(math.Ceil(w*scale)), int(math.Ceil(h*scale)))
	if r.background {
		dc.SetHexColor(styles.BackgroundColor)
		dc.Clear()
	}
	dc.Scale(scale, scale)

	outline := r.style != nil && r.style.Name() == "outline"
	for i, f := range frames {
		x, y := fs.origin(i)
		dc.Push()
		dc.Translate(x, y)
		drawViewport(dc, f, r.captions)
		for _, it := range f.PaintOrder() {
			if it.Visible() {
				drawCard(dc, r.card(it, f.Viewport.ItemCount), it, outline)
			}
		}
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawViewport(dc *gg.Context, f stack.Frame, captions bool) {
	dc.SetHexColor(styles.ViewportColor)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	dc.DrawRectangle(0, 0, f.Viewport.Width, f.Viewport.Height)
	dc.Stroke()
	dc.SetDash()
	if captions {
		dc.DrawString(caption(f), 0, f.Viewport.Height+16)
	}
}

func drawCard(dc *gg.Context, c styles.Card, it stack.ItemAttributes, outline bool) {
	dc.Push()
	defer dc.Pop()

	dc.Translate(it.Center.X, it.Center.Y)
	dc.Scale(it.Scale, it.Scale)
	radius := math.Min(c.W, c.H) * rasterCornerRatio
	dc.DrawRoundedRectangle(-c.W/2, -c.H/2, c.W, c.H, radius)

	fill := styles.DepthShade(styles.CardColor(c.Index), c.Depth)
	if outline {
		fill = colorful.Color{R: 1, G: 1, B: 1}
	}
	setColor(dc, fill, it.Opacity)
	dc.FillPreserve()
	setColor(dc, styles.StrokeFor(styles.CardColor(c.Index)), it.Opacity)
	dc.SetLineWidth(2)
	dc.Stroke()

	text, _ := colorful.Hex(styles.TextColor)
	setColor(dc, text, it.Opacity)
	dc.DrawStringAnchored(styles.Label(c), 0, 0, 0.5, 0.5)
}

func setColor(dc *gg.Context, c colorful.Color, alpha float64) {
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}
