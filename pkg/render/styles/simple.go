package styles

import (
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	cornerRadiusRatio = 0.06
	strokeWidth       = 2
)

const shadowFilter = `<filter id="card-shadow" x="-10%" y="-10%" width="120%" height="130%">
<feDropShadow dx="0" dy="2" stdDeviation="3" flood-opacity="0.25"/>
</filter>
`

// Simple draws filled rounded cards using the HCL palette.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(canvas *svg.SVG) {
	canvas.Def()
	fmt.Fprint(canvas.Writer, shadowFilter)
	canvas.DefEnd()
}

func (Simple) RenderCard(canvas *svg.SVG, c Card) {
	fill := DepthShade(CardColor(c.Index), c.Depth)
	x, y, w, h, r := cardRect(c)
	canvas.Roundrect(x, y, w, h, r, r,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", fill.Hex(), StrokeFor(fill).Hex(), strokeWidth),
		`filter="url(#card-shadow)"`)
	renderLabel(canvas, c)
}

func (Simple) RenderViewport(canvas *svg.SVG, v Viewport) {
	renderViewportOutline(canvas, v)
}

// Outline draws unfilled cards, useful for inspecting overlap.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(*svg.SVG) {}

func (Outline) RenderCard(canvas *svg.SVG, c Card) {
	x, y, w, h, r := cardRect(c)
	canvas.Roundrect(x, y, w, h, r, r,
		fmt.Sprintf("fill:white;fill-opacity:0.85;stroke:%s;stroke-width:%d", StrokeFor(CardColor(c.Index)).Hex(), strokeWidth))
	renderLabel(canvas, c)
}

func (Outline) RenderViewport(canvas *svg.SVG, v Viewport) {
	renderViewportOutline(canvas, v)
}

// cardRect returns the card rectangle centered on the origin, in whole units.
func cardRect(c Card) (x, y, w, h, r int) {
	w, h = int(math.Round(c.W)), int(math.Round(c.H))
	r = int(math.Round(math.Min(c.W, c.H) * cornerRadiusRatio))
	return -w / 2, -h / 2, w, h, r
}

func renderLabel(canvas *svg.SVG, c Card) {
	size := FontSize(Card{W: c.W, H: c.H, Label: Label(c)})
	canvas.Text(0, int(math.Round(size/3)), Label(c),
		fmt.Sprintf("font-family:Helvetica,Arial,sans-serif;font-size:%.0fpx;fill:%s;text-anchor:middle", size, TextColor))
}

func renderViewportOutline(canvas *svg.SVG, v Viewport) {
	canvas.Rect(0, 0, int(math.Round(v.W)), int(math.Round(v.H)),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:6,4", ViewportColor))
	if v.Caption != "" {
		canvas.Text(0, int(math.Round(v.H))+16, v.Caption,
			fmt.Sprintf("font-family:Menlo,monospace;font-size:12px;fill:%s", ViewportColor))
	}
}
