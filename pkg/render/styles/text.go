package styles

import "strconv"

const (
	fontHeightRatio = 0.25
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 48.0
)

// FontSize returns the label size for a card, bounded by its width and height.
func FontSize(c Card) float64 { return fontSizeFor(c.W, c.H, len(c.Label)) }

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// Label returns the card label, falling back to the 1-based item number.
func Label(c Card) string {
	if c.Label != "" {
		return c.Label
	}
	return itoa(c.Index + 1)
}

func itoa(i int) string { return strconv.Itoa(i) }
