package cache

import (
	"fmt"
	"strings"
)

// FrameKeyOpts holds everything that determines a frame computation.
type FrameKeyOpts struct {
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	ItemCount int       `json:"item_count"`
	Offsets   []float64 `json:"offsets"`
}

// ArtifactKeyOpts holds everything that determines rendered output.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys. Implementations may namespace keys, for
// example per tenant, without changing how callers build them.
type Keyer interface {
	// FrameKey returns the key for frames computed with configHash.
	FrameKey(configHash string, opts FrameKeyOpts) string

	// ArtifactKey returns the key for output rendered from framesHash.
	ArtifactKey(framesHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FrameKey generates a key for frame caching.
func (DefaultKeyer) FrameKey(configHash string, opts FrameKeyOpts) string {
	return hashKey("frames", configHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(framesHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", framesHash, strings.ToLower(opts.Format), opts.Style, fmt.Sprintf("%g", opts.Scale))
}
