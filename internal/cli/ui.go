package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorFail   = lipgloss.Color("167")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as the preview header.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)
	// StyleValue renders paths and numbers.
	StyleValue = lipgloss.NewStyle().Foreground(colorText)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// mark is a one-glyph status prefix.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = mark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markInfo = mark{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

// reporter prints human-facing status lines. Render output goes to stdout,
// so render reports on stderr.
type reporter struct {
	w io.Writer
}

func newReporter(w io.Writer) reporter { return reporter{w: w} }

func (r reporter) line(m mark, format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", m.style.Render(m.glyph), fmt.Sprintf(format, args...))
}

func (r reporter) success(format string, args ...any) { r.line(markOK, format, args...) }
func (r reporter) fail(format string, args ...any)    { r.line(markFail, format, args...) }
func (r reporter) info(format string, args ...any)    { r.line(markInfo, format, args...) }

func (r reporter) detail(format string, args ...any) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (r reporter) file(path string) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (r reporter) stats(frames, cards int, cached bool) {
	fmt.Fprintln(r.w, statsLine(frames, cards, cached))
}

// statsLine summarizes a render: "12 frames · 5 cards · cached".
func statsLine(frames, cards int, cached bool) string {
	var parts []string
	if frames > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d frames", frames)))
	}
	if cards > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d cards", cards)))
	}
	if cached {
		parts = append(parts, markOK.style.Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
