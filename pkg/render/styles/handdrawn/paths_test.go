package handdrawn

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/cardstack/pkg/render/styles"
)

var number = regexp.MustCompile(`-?\d+\.\d`)

func TestWobbledRectShape(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
	}{
		{"card", 10, 20, 200, 300},
		{"wide", 0, 0, 400, 40},
		{"tiny", 0, 0, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := wobbledRect(tt.x, tt.y, tt.w, tt.h, DefaultSeed, "card-0")
			if !strings.HasPrefix(p, "M") || !strings.HasSuffix(p, " Z") || !strings.Contains(p, "Q") {
				t.Fatalf("malformed path %q", p)
			}
			if p != wobbledRect(tt.x, tt.y, tt.w, tt.h, DefaultSeed, "card-0") {
				t.Error("path not stable for the same id and seed")
			}

			// Every coordinate stays within the jitter band around the rect.
			slack := math.Min(wobbleAmount, math.Min(tt.w, tt.h)/8) + 0.1
			nums := number.FindAllString(p, -1)
			for i, s := range nums {
				v, _ := strconv.ParseFloat(s, 64)
				lo, hi := tt.x, tt.x+tt.w
				if i%2 == 1 {
					lo, hi = tt.y, tt.y+tt.h
				}
				if v < lo-slack || v > hi+slack {
					t.Errorf("coordinate %v outside [%v, %v]", v, lo-slack, hi+slack)
				}
			}
		})
	}
}

func TestWobbledRectVariesByCardAndSeed(t *testing.T) {
	base := wobbledRect(0, 0, 200, 300, 1, "card-0")
	if base == wobbledRect(0, 0, 200, 300, 1, "card-1") {
		t.Error("different cards share a path")
	}
	if base == wobbledRect(0, 0, 200, 300, 2, "card-0") {
		t.Error("different seeds share a path")
	}
}

func TestRotationFor(t *testing.T) {
	for _, id := range []string{"card-0", "card-1", "card-2", "card-3"} {
		small := rotationFor(id, 100, 50)
		large := rotationFor(id, 400, 600)
		if small != rotationFor(id, 100, 50) {
			t.Errorf("rotationFor(%q) not stable", id)
		}
		if math.Abs(small) > 2*maxRotation {
			t.Errorf("rotationFor(%q) = %v exceeds %v", id, small, 2*maxRotation)
		}
		if math.Abs(large) > math.Abs(small) {
			t.Errorf("rotationFor(%q): large card %v rotates more than small %v", id, large, small)
		}
	}
}

func TestRNGRange(t *testing.T) {
	for _, seed := range []uint64{0, 1, DefaultSeed} {
		r := newRNG(seed)
		for i := 0; i < 200; i++ {
			if v := r.next(); v < 0 || v >= 1 {
				t.Fatalf("seed %d: next() = %v", seed, v)
			}
			if j := r.jitter(3); j < -3 || j >= 3 {
				t.Fatalf("seed %d: jitter(3) = %v", seed, j)
			}
		}
	}
}

func TestRenderCard(t *testing.T) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	s := New(DefaultSeed)
	s.RenderDefs(canvas)
	s.RenderCard(canvas, styles.Card{Index: 3, W: 200, H: 300, Scale: 1, Opacity: 1})

	out := buf.String()
	for _, want := range []string{`id="pencil"`, "<path", "rotate(", ">4<"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
