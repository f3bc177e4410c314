package stack

import (
	"cmp"
	"math"
	"slices"
)

// boundaryEpsilon is the fraction of a page within which an offset snaps to
// the nearest page boundary. It absorbs float rounding at offset == k·W.
const boundaryEpsilon = 1e-9

// Viewport is the host scroll state for one frame.
type Viewport struct {
	Offset    float64 `json:"offset"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	ItemCount int     `json:"item_count"`
}

// ItemAttributes are the render attributes of one visible card.
// Center is relative to the visible viewport: x = 0 is its left edge.
type ItemAttributes struct {
	Index   int     `json:"index"`
	Depth   int     `json:"depth"`
	Center  Point   `json:"center"`
	Size    Size    `json:"size"`
	Scale   float64 `json:"scale"`
	ZIndex  int     `json:"z_index"`
	Opacity float64 `json:"opacity"`
}

// Bounds returns the scaled rectangle occupied by the card in viewport space.
func (a ItemAttributes) Bounds() Rect {
	w, h := a.Size.Width*a.Scale, a.Size.Height*a.Scale
	return Rect{X: a.Center.X - w/2, Y: a.Center.Y - h/2, Width: w, Height: h}
}

// ContentCenter returns the center in content space for the given scroll offset.
func (a ItemAttributes) ContentCenter(offset float64) Point {
	return Point{X: a.Center.X + offset, Y: a.Center.Y}
}

// Visible reports whether the card contributes any pixels.
func (a ItemAttributes) Visible() bool { return a.Opacity > 0 && a.Scale > 0 }

// Frame is the result of one layout pass.
type Frame struct {
	Viewport    Viewport         `json:"viewport"`
	CurrentPage int              `json:"current_page"`
	PageOffset  float64          `json:"page_offset"`
	Progress    float64          `json:"progress"`
	ContentSize Size             `json:"content_size"`
	Items       []ItemAttributes `json:"items"`
}

// Item returns the attributes of the card with the given index, if visible.
func (f Frame) Item(index int) (ItemAttributes, bool) {
	for _, it := range f.Items {
		if it.Index == index {
			return it, true
		}
	}
	return ItemAttributes{}, false
}

// PaintOrder returns the items sorted back to front (ascending ZIndex).
// The frame itself is not modified.
func (f Frame) PaintOrder() []ItemAttributes {
	items := slices.Clone(f.Items)
	slices.SortStableFunc(items, func(a, b ItemAttributes) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return items
}

// clone returns a deep copy so cached frames can be handed out safely.
func (f Frame) clone() Frame {
	f.Items = slices.Clone(f.Items)
	return f
}

// Compute lays out the stack for one frame. It is a pure function: identical
// inputs always produce identical frames.
//
// Degenerate input yields a frame without items: zero or negative viewport
// width, no items, or a configuration that fails [Config.Validate].
func Compute(cfg Config, vp Viewport) Frame {
	frame := Frame{Viewport: vp, ContentSize: ContentSize(vp)}
	if vp.Width <= 0 || vp.ItemCount <= 0 || cfg.Validate() != nil {
		return frame
	}

	w := vp.Width
	page, pageOffset := pagePosition(finite(vp.Offset), w)
	page = min(page, vp.ItemCount)
	t := clamp(pageOffset/w, 0, 1)

	frame.CurrentPage = page
	frame.PageOffset = pageOffset
	frame.Progress = t

	last := min(page+cfg.MaxVisible, vp.ItemCount)
	frame.Items = make([]ItemAttributes, 0, last-page)
	for i := page; i < last; i++ {
		frame.Items = append(frame.Items, itemAttributes(cfg, vp, i-page, i, pageOffset, t))
	}
	return frame
}

func itemAttributes(cfg Config, vp Viewport, d, index int, pageOffset, t float64) ItemAttributes {
	scale := cfg.Scale(d)
	if d > 0 {
		scale += (cfg.Scale(d-1) - scale) * t
	}

	x := vp.Width/2 + cfg.inset(d)
	opacity := 1.0
	switch {
	case d == 0:
		// Overscroll before the first page leaves the front card in place.
		if pageOffset > 0 {
			x -= pageOffset
		}
	case d < cfg.MaxVisible:
		x -= cfg.drift() * t
		if d == cfg.MaxVisible-1 {
			opacity = t
		}
	default:
		opacity = 0
	}

	return ItemAttributes{
		Index:   index,
		Depth:   d,
		Center:  Point{X: x, Y: vp.Height / 2},
		Size:    cfg.ItemSize,
		Scale:   scale,
		ZIndex:  cfg.MaxVisible - d,
		Opacity: opacity,
	}
}

// pagePosition splits an offset into a page index (≥ 0) and the displacement
// into that page. The displacement is negative only for overscroll before
// page 0.
func pagePosition(offset, width float64) (int, float64) {
	p := math.Floor(offset / width)
	rem := offset - p*width
	switch {
	case rem >= width*(1-boundaryEpsilon):
		p++
		rem = 0
	case math.Abs(rem) <= width*boundaryEpsilon:
		rem = 0
	}
	if p < 0 {
		return 0, offset
	}
	if p > math.MaxInt32 {
		p = math.MaxInt32
	}
	return int(p), rem
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
