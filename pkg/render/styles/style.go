package styles

import (
	"strings"

	svg "github.com/ajstarks/svgo"

	errs "github.com/matzehuels/cardstack/pkg/errors"
)

// Style defines the visual appearance of rendered frames.
// Implementations control how cards and viewport outlines are drawn.
type Style interface {
	// Name returns the identifier used on the command line and in cache keys.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(canvas *svg.SVG)
	// RenderCard writes the SVG for a single card. The canvas origin is the
	// card center and the card is drawn unscaled; the caller applies
	// translation, scale and opacity.
	RenderCard(canvas *svg.SVG, c Card)
	// RenderViewport writes the outline of the visible viewport.
	RenderViewport(canvas *svg.SVG, v Viewport)
}

// Card contains all data needed to render a single card.
type Card struct {
	Index   int     // Item index in the collection
	Depth   int     // Position in the stack, 0 is the front card
	Count   int     // Number of items in the collection
	W, H    float64 // Unscaled card size
	Scale   float64 // Scale applied by the caller
	Opacity float64 // Opacity applied by the caller
	Label   string  // Display text
}

// ID returns a stable identifier for the card, used for seeding.
func (c Card) ID() string { return "card-" + itoa(c.Index) }

// Viewport contains positioning data for the viewport outline.
type Viewport struct {
	W, H    float64
	Page    int
	Offset  float64
	Caption string
}

// Names lists the built-in styles.
var Names = []string{"simple", "outline", "handdrawn"}

var registry = map[string]Style{}

// Register makes a style available to [ByName]. It is called from init by
// style implementations.
func Register(s Style) {
	registry[s.Name()] = s
}

// ByName returns the style with the given name (case-insensitive).
func ByName(name string) (Style, error) {
	if s, ok := registry[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, errs.New(errs.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", name, strings.Join(Names, ", "))
}

func init() {
	Register(Simple{})
	Register(Outline{})
}
