package stack

import errs "github.com/matzehuels/cardstack/pkg/errors"

// Collection is the host data source. The stack geometry only models a single
// flat sequence of items.
type Collection interface {
	Sections() int
	Items(section int) int
}

// Items is a Collection with one section of n items.
type Items int

// Sections implements Collection.
func (n Items) Sections() int { return 1 }

// Items implements Collection.
func (n Items) Items(int) int { return max(0, int(n)) }

// ViewportFor builds the viewport for a collection. A collection with more
// than one section is a usage error and is reported with
// [errs.ErrCodeMultipleSections]. An empty collection yields zero items.
func ViewportFor(c Collection, offset, width, height float64) (Viewport, error) {
	vp := Viewport{Offset: offset, Width: width, Height: height}
	switch n := c.Sections(); {
	case n == 0:
		return vp, nil
	case n > 1:
		return Viewport{}, errs.New(errs.ErrCodeMultipleSections, "card stack requires exactly one section, got %d", n)
	}
	vp.ItemCount = max(0, c.Items(0))
	return vp, nil
}
