package stack

import (
	"slices"
	"sync"
)

// Reason explains why a [Layout] was invalidated.
type Reason int

const (
	// ReasonConfig means the configuration was replaced.
	ReasonConfig Reason = iota + 1
	// ReasonBounds means the viewport bounds changed.
	ReasonBounds
	// ReasonExplicit means a caller asked for a re-layout.
	ReasonExplicit
)

func (r Reason) String() string {
	switch r {
	case ReasonConfig:
		return "config"
	case ReasonBounds:
		return "bounds"
	case ReasonExplicit:
		return "explicit"
	}
	return "unknown"
}

// InvalidationFunc is called after a [Layout] drops its cached pass.
// Hosts typically respond by scheduling a re-layout.
type InvalidationFunc func(Reason)

// Layout wraps [Compute] with the invalidation contract a UI host expects.
// It caches the most recent pass and recomputes when the viewport changes,
// when the configuration is replaced, or when [Layout.Invalidate] is called.
//
// Configuration changes never happen implicitly: callers go through
// [Layout.SetConfig], which validates, invalidates and notifies subscribers.
//
// Layout is safe for one writer and any number of concurrent readers.
type Layout struct {
	mu         sync.RWMutex
	cfg        Config
	generation uint64
	last       *pass
	subs       map[int]InvalidationFunc
	nextSub    int
}

type pass struct {
	generation uint64
	viewport   Viewport
	frame      Frame
}

// NewLayout creates a Layout with the given configuration.
func NewLayout(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Layout{cfg: cfg, subs: make(map[int]InvalidationFunc)}, nil
}

// Config returns the current configuration.
func (l *Layout) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// SetConfig replaces the configuration. An invalid configuration is rejected
// and leaves the layout untouched. Setting an identical configuration is a
// no-op and does not notify.
func (l *Layout) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	if l.cfg == cfg {
		l.mu.Unlock()
		return nil
	}
	l.cfg = cfg
	subs := l.invalidateLocked()
	l.mu.Unlock()

	notify(subs, ReasonConfig)
	return nil
}

// Subscribe registers fn to be called on every invalidation and returns a
// function that removes the subscription.
func (l *Layout) Subscribe(fn InvalidationFunc) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Invalidate drops the cached pass and notifies subscribers.
func (l *Layout) Invalidate() {
	l.invalidate(ReasonExplicit)
}

// ShouldInvalidateForBoundsChange always returns true: any change of the
// viewport can move page boundaries.
func (l *Layout) ShouldInvalidateForBoundsChange(old, updated Viewport) bool {
	return true
}

// BoundsChanged is called by the host when the viewport moved or resized.
func (l *Layout) BoundsChanged(old, updated Viewport) {
	if l.ShouldInvalidateForBoundsChange(old, updated) {
		l.invalidate(ReasonBounds)
	}
}

// Frame returns the layout pass for vp, recomputing it if needed.
func (l *Layout) Frame(vp Viewport) Frame {
	l.mu.RLock()
	cfg, gen, last := l.cfg, l.generation, l.last
	l.mu.RUnlock()

	if last != nil && last.generation == gen && last.viewport == vp {
		return last.frame.clone()
	}

	frame := Compute(cfg, vp)

	l.mu.Lock()
	if l.generation == gen {
		l.last = &pass{generation: gen, viewport: vp, frame: frame.clone()}
	}
	l.mu.Unlock()
	return frame
}

// Attributes returns the attributes of every visible card for vp.
func (l *Layout) Attributes(vp Viewport) []ItemAttributes {
	return l.Frame(vp).Items
}

// AttributesForItem returns the attributes of a single card, if it is inside
// the stack window for vp.
func (l *Layout) AttributesForItem(index int, vp Viewport) (ItemAttributes, bool) {
	return l.Frame(vp).Item(index)
}

// AttributesInRect returns the visible cards whose bounds intersect r.
func (l *Layout) AttributesInRect(r Rect, vp Viewport) []ItemAttributes {
	var out []ItemAttributes
	for _, it := range l.Frame(vp).Items {
		if it.Visible() && it.Bounds().Intersects(r) {
			out = append(out, it)
		}
	}
	return out
}

func (l *Layout) invalidate(reason Reason) {
	l.mu.Lock()
	subs := l.invalidateLocked()
	l.mu.Unlock()
	notify(subs, reason)
}

// invalidateLocked must be called with l.mu held. It returns a snapshot of
// the subscribers so they can be notified after the lock is released.
func (l *Layout) invalidateLocked() []InvalidationFunc {
	l.generation++
	l.last = nil
	ids := make([]int, 0, len(l.subs))
	for id := range l.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	subs := make([]InvalidationFunc, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, l.subs[id])
	}
	return subs
}

func notify(subs []InvalidationFunc, reason Reason) {
	for _, fn := range subs {
		fn(reason)
	}
}
