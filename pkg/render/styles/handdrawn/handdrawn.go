// Package handdrawn provides a sketch-like card style: wobbly outlines,
// grey fills and a slight per-card rotation, all seeded by the card id so
// output is reproducible.
package handdrawn

import (
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/cardstack/pkg/render/styles"
)

const pencilFilter = `<filter id="pencil">
<feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" result="noise"/>
<feDisplacementMap in="SourceGraphic" in2="noise" scale="1.5" xChannelSelector="R" yChannelSelector="G"/>
</filter>
`

// DefaultSeed seeds the wobble when none is given.
const DefaultSeed uint64 = 42

// HandDrawn renders cards as pencil sketches.
type HandDrawn struct {
	Seed uint64
}

// New creates a hand-drawn style with the given seed.
func New(seed uint64) HandDrawn { return HandDrawn{Seed: seed} }

func init() {
	styles.Register(New(DefaultSeed))
}

func (HandDrawn) Name() string { return "handdrawn" }

func (HandDrawn) RenderDefs(canvas *svg.SVG) {
	canvas.Def()
	fmt.Fprint(canvas.Writer, pencilFilter)
	canvas.DefEnd()
}

func (s HandDrawn) RenderCard(canvas *svg.SVG, c styles.Card) {
	id := c.ID()
	rot := rotationFor(id, c.W, c.H)
	canvas.Group(fmt.Sprintf(`transform="rotate(%.2f)"`, rot))
	canvas.Path(wobbledRect(-c.W/2, -c.H/2, c.W, c.H, s.Seed, id),
		fmt.Sprintf("fill:%s;stroke:#333;stroke-width:2;stroke-linejoin:round", greyForID(id)),
		`filter="url(#pencil)"`)
	size := styles.FontSize(styles.Card{W: c.W, H: c.H, Label: styles.Label(c)})
	canvas.Text(0, int(math.Round(size/3)), styles.Label(c),
		fmt.Sprintf("font-family:'Comic Sans MS','Patrick Hand',cursive;font-size:%.0fpx;fill:#222;text-anchor:middle", size))
	canvas.Gend()
}

func (s HandDrawn) RenderViewport(canvas *svg.SVG, v styles.Viewport) {
	canvas.Path(wobbledRect(0, 0, v.W, v.H, s.Seed, fmt.Sprintf("viewport-%d", v.Page)),
		"fill:none;stroke:#999;stroke-width:1;stroke-dasharray:5,5")
	if v.Caption != "" {
		canvas.Text(0, int(math.Round(v.H))+16, v.Caption, "font-family:cursive;font-size:12px;fill:#777")
	}
}
