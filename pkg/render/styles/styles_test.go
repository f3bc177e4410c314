package styles_test

import (
	"bytes"
	"strings"
	"testing"

	svg "github.com/ajstarks/svgo"

	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/render/styles"
	_ "github.com/matzehuels/cardstack/pkg/render/styles/handdrawn"
)

func TestByName(t *testing.T) {
	for _, name := range styles.Names {
		s, err := styles.ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("ByName(%q).Name() = %q", name, s.Name())
		}
	}

	if _, err := styles.ByName("SIMPLE"); err != nil {
		t.Errorf("ByName should be case-insensitive: %v", err)
	}

	_, err := styles.ByName("neon")
	if !errs.Is(err, errs.ErrCodeInvalidStyle) {
		t.Errorf("ByName(neon) = %v, want ErrCodeInvalidStyle", err)
	}
}

func TestCardColor(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 12; i++ {
		hex := styles.CardColor(i).Hex()
		if seen[hex] {
			t.Errorf("CardColor(%d) = %s repeats an earlier color", i, hex)
		}
		seen[hex] = true
		if styles.CardColor(i).Hex() != hex {
			t.Errorf("CardColor(%d) is not deterministic", i)
		}
	}
}

func TestDepthShade(t *testing.T) {
	base := styles.CardColor(0)
	if styles.DepthShade(base, 0) != base {
		t.Error("depth 0 should keep the base color")
	}

	bg := styles.DepthShade(base, 100)
	near := styles.DepthShade(base, 1)
	if base.DistanceLab(near) >= base.DistanceLab(bg) {
		t.Error("deeper cards should be shaded further from the base color")
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name string
		card styles.Card
		want float64
	}{
		{"height bound", styles.Card{W: 200, H: 40, Label: "1"}, 10},
		{"clamped max", styles.Card{W: 1000, H: 1000, Label: "1"}, 48},
		{"clamped min", styles.Card{W: 10, H: 10, Label: "a very long label"}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styles.FontSize(tt.card); got != tt.want {
				t.Errorf("FontSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := styles.Label(styles.Card{Index: 0}); got != "1" {
		t.Errorf("Label() = %q, want 1", got)
	}
	if got := styles.Label(styles.Card{Index: 0, Label: "intro"}); got != "intro" {
		t.Errorf("Label() = %q, want intro", got)
	}
}

func TestRenderCard(t *testing.T) {
	for _, name := range styles.Names {
		t.Run(name, func(t *testing.T) {
			s, _ := styles.ByName(name)
			var buf bytes.Buffer
			canvas := svg.New(&buf)
			s.RenderDefs(canvas)
			s.RenderCard(canvas, styles.Card{Index: 1, W: 200, H: 300, Scale: 1, Opacity: 1})
			s.RenderViewport(canvas, styles.Viewport{W: 200, H: 300, Caption: "offset 0"})

			out := buf.String()
			if !strings.Contains(out, ">2<") {
				t.Errorf("card label missing:\n%s", out)
			}
			if !strings.Contains(out, "offset 0") {
				t.Errorf("viewport caption missing:\n%s", out)
			}
		})
	}
}
