package stack

// ScrollHost is the host scroll container seen from the pager.
type ScrollHost interface {
	// Viewport returns the current scroll state.
	Viewport() Viewport
	// ScrollTo moves the content to offset. Animation is up to the host.
	ScrollTo(offset float64, animated bool)
}

// Pager translates page navigation into scroll offsets.
type Pager struct {
	host ScrollHost
}

// NewPager creates a pager bound to host.
func NewPager(host ScrollHost) *Pager {
	return &Pager{host: host}
}

// CurrentPage returns the page at the front of the stack.
func (p *Pager) CurrentPage() int {
	vp := p.host.Viewport()
	return CurrentPage(vp.Offset, vp.Width)
}

// SetCurrentPage asks the host to scroll so that page is at the front and
// returns the target offset. The page is clamped to the valid range.
func (p *Pager) SetCurrentPage(page int, animated bool) float64 {
	vp := p.host.Viewport()
	target := OffsetForPage(page, vp.Width, vp.ItemCount)
	p.host.ScrollTo(target, animated)
	return target
}

// Next advances one page.
func (p *Pager) Next(animated bool) float64 {
	return p.SetCurrentPage(p.CurrentPage()+1, animated)
}

// Previous goes back one page.
func (p *Pager) Previous(animated bool) float64 {
	return p.SetCurrentPage(p.CurrentPage()-1, animated)
}
