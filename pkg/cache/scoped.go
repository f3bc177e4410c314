package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several services or environments share one Redis
// instance and must not read each other's entries.
//
// Example usage:
//
//	// Staging keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Unprefixed keys
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FrameKey generates a prefixed key for frame caching.
func (k *ScopedKeyer) FrameKey(configHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(configHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(framesHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(framesHash, opts)
}
