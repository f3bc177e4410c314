package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/cardstack/pkg/render/styles"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// cellAspect is the height of a terminal cell in columns.
const cellAspect = 2.0

// cell is one character of the preview canvas.
type cell struct {
	r      rune
	fg, bg string
}

// canvas rasterizes a frame onto a grid of terminal cells.
type canvas struct {
	cols, rows int
	cells      [][]cell
	x0, y0     float64 // world origin of cell (0, 0)
	unit       float64 // world units per column
}

// newCanvas sizes a canvas so the viewport and every card in frame fit.
func newCanvas(frame stack.Frame, cols, rows int) *canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	vp := frame.Viewport
	x0, y0 := 0.0, 0.0
	x1, y1 := math.Max(vp.Width, 1), math.Max(vp.Height, 1)
	for _, it := range frame.Items {
		b := it.Bounds()
		x0, y0 = math.Min(x0, b.MinX()), math.Min(y0, b.MinY())
		x1, y1 = math.Max(x1, b.MaxX()), math.Max(y1, b.MaxY())
	}

	c := &canvas{cols: cols, rows: rows, x0: x0, y0: y0}
	c.unit = math.Max((x1-x0)/float64(cols), (y1-y0)/(float64(rows)*cellAspect))
	c.cells = make([][]cell, rows)
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' '}
		}
	}
	return c
}

func (c *canvas) col(x float64) int { return int(math.Round((x - c.x0) / c.unit)) }
func (c *canvas) row(y float64) int { return int(math.Round((y - c.y0) / (c.unit * cellAspect))) }

func (c *canvas) set(col, row int, r rune, fg, bg string) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.cells[row][col] = cell{r: r, fg: fg, bg: bg}
}

// drawViewport outlines the visible page.
func (c *canvas) drawViewport(vp stack.Viewport) {
	l, r := c.col(0), c.col(vp.Width)-1
	t, b := c.row(0), c.row(vp.Height)-1
	for x := l; x <= r; x++ {
		c.set(x, t, '┄', styles.ViewportColor, "")
		c.set(x, b, '┄', styles.ViewportColor, "")
	}
	for y := t; y <= b; y++ {
		c.set(l, y, '┆', styles.ViewportColor, "")
		c.set(r, y, '┆', styles.ViewportColor, "")
	}
}

// bounds is the world rectangle the canvas grid covers.
func (c *canvas) bounds() stack.Rect {
	return stack.Rect{
		X:      c.x0,
		Y:      c.y0,
		Width:  c.unit * float64(c.cols),
		Height: c.unit * cellAspect * float64(c.rows),
	}
}

// drawCards paints the viewport outline and then items back to front,
// skipping any that are fully faded.
func (c *canvas) drawCards(vp stack.Viewport, items []stack.ItemAttributes, labels []string) {
	c.drawViewport(vp)
	for _, it := range (stack.Frame{Items: items}).PaintOrder() {
		if !it.Visible() {
			continue
		}
		c.drawCard(it, cardLabel(it.Index, labels))
	}
}

func (c *canvas) drawCard(it stack.ItemAttributes, label string) {
	fill := cardShade(it)
	stroke := styles.StrokeFor(fill).Hex()
	bg := fill.Hex()

	b := it.Bounds()
	l, r := c.col(b.MinX()), c.col(b.MaxX())-1
	t, bt := c.row(b.MinY()), c.row(b.MaxY())-1
	if r <= l || bt <= t {
		c.set(l, t, '▪', bg, "")
		return
	}

	for y := t; y <= bt; y++ {
		for x := l; x <= r; x++ {
			ch := ' '
			switch {
			case y == t && x == l:
				ch = '┌'
			case y == t && x == r:
				ch = '┐'
			case y == bt && x == l:
				ch = '└'
			case y == bt && x == r:
				ch = '┘'
			case y == t || y == bt:
				ch = '─'
			case x == l || x == r:
				ch = '│'
			}
			c.set(x, y, ch, stroke, bg)
		}
	}

	if w := r - l - 1; w > 0 {
		runes := []rune(label)
		if len(runes) > w {
			runes = runes[:w]
		}
		start := l + 1 + (w-len(runes))/2
		mid := (t + bt) / 2
		for i, ch := range runes {
			c.set(start+i, mid, ch, styles.TextColor, bg)
		}
	}
}

// String renders the canvas with ANSI colors, one style run at a time.
func (c *canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].fg == row[start].fg && row[j].bg == row[start].bg {
				continue
			}
			sb.WriteString(renderRun(row[start:j]))
			start = j
		}
	}
	return sb.String()
}

// Plain renders the canvas without colors.
func (c *canvas) Plain() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, cl := range row {
			sb.WriteRune(cl.r)
		}
	}
	return sb.String()
}

func renderRun(run []cell) string {
	rs := make([]rune, len(run))
	for i, cl := range run {
		rs[i] = cl.r
	}
	style := lipgloss.NewStyle()
	if run[0].fg != "" {
		style = style.Foreground(lipgloss.Color(run[0].fg))
	}
	if run[0].bg != "" {
		style = style.Background(lipgloss.Color(run[0].bg))
	}
	return style.Render(string(rs))
}

// cardShade darkens by depth and fades toward the background with opacity.
func cardShade(it stack.ItemAttributes) colorful.Color {
	c := styles.DepthShade(styles.CardColor(it.Index), it.Depth)
	if it.Opacity >= 1 {
		return c
	}
	bg, _ := colorful.Hex(styles.BackgroundColor)
	return c.BlendLab(bg, 1-it.Opacity).Clamped()
}

func cardLabel(index int, labels []string) string {
	if index < len(labels) && labels[index] != "" {
		return labels[index]
	}
	return "#" + strconv.Itoa(index)
}
