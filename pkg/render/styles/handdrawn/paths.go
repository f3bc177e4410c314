package handdrawn

import (
	"fmt"
	"math"
	"strings"
)

const (
	wobbleAmount   = 2.5
	wobbleSegments = 24.0
	maxRotation    = 1.5
)

// rng is a small xorshift generator; math/rand would tie output to the Go
// version.
type rng struct{ state uint64 }

func newRNG(seed uint64) *rng {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &rng{state: seed}
}

// next returns a value in [0, 1).
func (r *rng) next() float64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return float64(r.state>>11) / (1 << 53)
}

// jitter returns a value in [-amount, amount).
func (r *rng) jitter(amount float64) float64 {
	return (r.next()*2 - 1) * amount
}

// wobbledRect returns a closed path approximating the rectangle with
// slightly curved edges.
func wobbledRect(x, y, w, h float64, seed uint64, id string) string {
	r := newRNG(hash(id, seed))
	amount := math.Min(wobbleAmount, math.Min(w, h)/8)

	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	var b strings.Builder
	fmt.Fprintf(&b, "M%.1f,%.1f", corners[0][0]+r.jitter(amount), corners[0][1]+r.jitter(amount))
	for i := 1; i <= len(corners); i++ {
		from, to := corners[i-1], corners[i%len(corners)]
		length := math.Hypot(to[0]-from[0], to[1]-from[1])
		steps := max(1, int(length/(wobbleSegments*4)))
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			mid := (float64(s) - 0.5) / float64(steps)
			cx := from[0] + (to[0]-from[0])*mid + r.jitter(amount)
			cy := from[1] + (to[1]-from[1])*mid + r.jitter(amount)
			ex := from[0] + (to[0]-from[0])*t + r.jitter(amount/2)
			ey := from[1] + (to[1]-from[1])*t + r.jitter(amount/2)
			fmt.Fprintf(&b, " Q%.1f,%.1f %.1f,%.1f", cx, cy, ex, ey)
		}
	}
	b.WriteString(" Z")
	return b.String()
}

// rotationFor returns a small rotation in degrees for id. Larger cards
// rotate less so their corners stay in place.
func rotationFor(id string, w, h float64) float64 {
	r := newRNG(hash(id, 7))
	damp := 1.0
	if d := math.Max(w, h); d > 100 {
		damp = 100 / d
	}
	return r.jitter(maxRotation) * damp * 2
}
