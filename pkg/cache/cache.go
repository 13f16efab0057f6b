// Package cache stores rendered figure artifacts between CLI runs, so
// re-rendering an unchanged figure file is a file read instead of a
// solve-and-render pass. Keys derive from a content hash of the figure
// description plus the render options, never from file paths.
package cache

import (
	"context"
	"time"
)

// Cache lifetimes per pipeline stage. Solved layouts and rendered
// artifacts are pure functions of their keys, so the TTLs only bound
// disk usage, not staleness.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the inputs that change a solved layout.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
	DPI    float64
	Guides string // guide mode
}

// ArtifactKeyOpts are the inputs that change a rendered artifact for a
// given figure. The frame dimensions belong here as much as in the
// layout key: the artifact embeds the solved geometry.
type ArtifactKeyOpts struct {
	Format      string
	Width       float64
	Height      float64
	DPI         float64
	Scale       float64
	CellFrames  bool
	Transparent bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey keys a solved layout by the figure's content hash and
	// the solve options.
	LayoutKey(figHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered document by the figure's content
	// hash and the render options.
	ArtifactKey(figHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(figHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", figHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(figHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figHash, opts)
}
