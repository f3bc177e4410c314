package styles

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	paletteChroma    = 0.45
	paletteLuminance = 0.72
	paletteHueStart  = 210.0
	// golden angle keeps neighbouring cards apart on the wheel
	paletteHueStep = 137.508
)

// CardColor returns the fill color for the card at index. Colors are spread
// over the HCL wheel so adjacent cards stay distinguishable.
func CardColor(index int) colorful.Color {
	h := math.Mod(paletteHueStart+float64(index)*paletteHueStep, 360)
	return colorful.Hcl(h, paletteChroma, paletteLuminance).Clamped()
}

// DepthShade blends c toward the background as depth increases, so cards
// further back read as further away.
func DepthShade(c colorful.Color, depth int) colorful.Color {
	if depth <= 0 {
		return c
	}
	bg, _ := colorful.Hex(BackgroundColor)
	t := math.Min(0.12*float64(depth), 0.6)
	return c.BlendLab(bg, t).Clamped()
}

// StrokeFor returns a darker variant of c for card borders.
func StrokeFor(c colorful.Color) colorful.Color {
	l, a, b := c.Lab()
	return colorful.Lab(l*0.6, a, b).Clamped()
}

// Colors shared by the built-in styles.
const (
	BackgroundColor = "#f6f7f9"
	ViewportColor   = "#9aa3ad"
	TextColor       = "#1f2328"
)
