package sink

import (
	"fmt"
	"math"

	"github.com/matzehuels/cardstack/pkg/stack"
)

const (
	panelPadding  = 16.0
	captionHeight = 24.0
)

// filmstrip places one panel per frame on a grid. All panels share the same
// size so cards line up between frames.
type filmstrip struct {
	columns        int
	rows           int
	panelW, panelH float64
	// origin of viewport space inside a panel
	originX, originY float64
}

func newFilmstrip(frames []stack.Frame, columns int, captions bool) filmstrip {
	minX, minY, maxX, maxY := 0.0, 0.0, 1.0, 1.0
	for _, f := range frames {
		maxX = math.Max(maxX, f.Viewport.Width)
		maxY = math.Max(maxY, f.Viewport.Height)
		for _, it := range f.Items {
			if !it.Visible() {
				continue
			}
			b := it.Bounds()
			minX, minY = math.Min(minX, b.MinX()), math.Min(minY, b.MinY())
			maxX, maxY = math.Max(maxX, b.MaxX()), math.Max(maxY, b.MaxY())
		}
	}

	n := max(1, len(frames))
	if columns <= 0 || columns > n {
		columns = n
	}
	fs := filmstrip{
		columns: columns,
		rows:    (n + columns - 1) / columns,
		panelW:  math.Ceil(maxX-minX) + 2*panelPadding,
		panelH:  math.Ceil(maxY-minY) + 2*panelPadding,
		originX: panelPadding - minX,
		originY: panelPadding - minY,
	}
	if captions {
		fs.panelH += captionHeight
	}
	return fs
}

// size returns the total canvas size.
func (fs filmstrip) size() (w, h float64) {
	return float64(fs.columns) * fs.panelW, float64(fs.rows) * fs.panelH
}

// origin returns the position of viewport space (0, 0) for panel i.
func (fs filmstrip) origin(i int) (x, y float64) {
	col, row := i%fs.columns, i/fs.columns
	return float64(col)*fs.panelW + fs.originX, float64(row)*fs.panelH + fs.originY
}

// caption describes a frame for the panel label.
func caption(f stack.Frame) string {
	return fmt.Sprintf("offset %.1f  page %d  t=%.2f", f.Viewport.Offset, f.CurrentPage, f.Progress)
}
