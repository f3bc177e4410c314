package stack

import (
	"math"
	"testing"
)

func TestCurrentPage(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		width  float64
		want   int
	}{
		{"origin", 0, 300, 0},
		{"inside first", 299, 300, 0},
		{"exact boundary", 300, 300, 1},
		{"fraction", 450.5, 300, 1},
		{"negative", -10, 300, 0},
		{"zero width", 900, 0, 0},
		{"negative width", 900, -300, 0},
		{"nan", math.NaN(), 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentPage(tt.offset, tt.width); got != tt.want {
				t.Errorf("CurrentPage(%v, %v) = %d, want %d", tt.offset, tt.width, got, tt.want)
			}
		})
	}
}

func TestCurrentPageMatchesFloor(t *testing.T) {
	for _, w := range []float64{1, 7, 300, 1024.5} {
		for i := 0; i < 60; i++ {
			x := float64(i) * w / 3
			if got, want := CurrentPage(x, w), int(math.Floor(x/w)); got != want {
				t.Errorf("CurrentPage(%v, %v) = %d, want %d", x, w, got, want)
			}
		}
	}
}

func TestOffsetForPage(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		width float64
		n     int
		want  float64
	}{
		{"first", 0, 300, 10, 0},
		{"third", 2, 300, 10, 600},
		{"clamped high", 42, 300, 10, 2700},
		{"clamped low", -3, 300, 10, 0},
		{"no items", 2, 300, 0, 0},
		{"zero width", 2, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OffsetForPage(tt.page, tt.width, tt.n); got != tt.want {
				t.Errorf("OffsetForPage(%d) = %v, want %v", tt.page, got, tt.want)
			}
		})
	}
}

func TestOffsetForPageRoundTrip(t *testing.T) {
	for x := 0.0; x < 3000; x += 41 {
		p := CurrentPage(x, 300)
		if off := OffsetForPage(p, 300, 10); off > x {
			t.Errorf("OffsetForPage(CurrentPage(%v)) = %v, want <= %v", x, off, x)
		}
	}
}

func TestNearestPage(t *testing.T) {
	tests := []struct {
		offset float64
		want   int
	}{
		{0, 0},
		{149, 0},
		{150, 1},
		{451, 2},
		{-200, 0},
		{99999, 9},
	}

	for _, tt := range tests {
		if got := NearestPage(tt.offset, 300, 10); got != tt.want {
			t.Errorf("NearestPage(%v) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestContentSize(t *testing.T) {
	got := ContentSize(Viewport{Width: 300, Height: 600, ItemCount: 10})
	if got != (Size{Width: 3000, Height: 600}) {
		t.Errorf("ContentSize() = %+v, want {3000 600}", got)
	}
	if got := ContentSize(Viewport{Width: 300, Height: 600}); got.Width != 0 {
		t.Errorf("ContentSize(empty).Width = %v, want 0", got.Width)
	}
	if got := MaxOffset(Viewport{Width: 300, ItemCount: 10}); got != 2700 {
		t.Errorf("MaxOffset() = %v, want 2700", got)
	}
}
