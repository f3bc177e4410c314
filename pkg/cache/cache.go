// Package cache provides byte-level caching for computed frames and rendered
// artifacts.
//
// The pipeline stores two kinds of entries:
//   - frames: JSON-encoded [stack.Frame] slices keyed by config, viewport and offsets
//   - artifacts: rendered SVG/PNG/PDF/JSON output keyed by frame hash, format and style
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache] for
// servers that share a cache between instances, and [NullCache] to disable
// caching entirely.
//
// [stack.Frame]: github.com/matzehuels/cardstack/pkg/stack.Frame
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cache entries.
const (
	// TTLFrames is the lifetime of cached frame computations.
	TTLFrames = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered output.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
