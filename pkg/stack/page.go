package stack

import "math"

// CurrentPage returns floor(offset / width) clamped to ≥ 0.
// It returns 0 when width is not positive.
func CurrentPage(offset, width float64) int {
	if width <= 0 {
		return 0
	}
	p, _ := pagePosition(finite(offset), width)
	return p
}

// OffsetForPage returns the scroll offset that brings page to the front.
// The page is clamped to [0, itemCount−1].
func OffsetForPage(page int, width float64, itemCount int) float64 {
	if width <= 0 || itemCount <= 0 {
		return 0
	}
	page = max(0, min(page, itemCount-1))
	return float64(page) * width
}

// NearestPage returns the page whose resting offset is closest to offset,
// clamped to [0, itemCount−1]. Hosts use it to snap after a drag ends.
func NearestPage(offset, width float64, itemCount int) int {
	if width <= 0 || itemCount <= 0 {
		return 0
	}
	p := int(math.Round(finite(offset) / width))
	return max(0, min(p, itemCount-1))
}

// ContentSize is the scrollable content extent: one viewport width per item.
func ContentSize(vp Viewport) Size {
	if vp.Width <= 0 || vp.ItemCount <= 0 {
		return Size{Width: 0, Height: math.Max(0, vp.Height)}
	}
	return Size{Width: vp.Width * float64(vp.ItemCount), Height: vp.Height}
}

// MaxOffset returns the largest resting offset (the last page).
func MaxOffset(vp Viewport) float64 {
	return OffsetForPage(vp.ItemCount-1, vp.Width, vp.ItemCount)
}
