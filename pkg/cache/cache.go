// Package cache stores probe results and rendered artifacts between runs.
//
// Two implementations are provided:
//
//   - [FileCache] keeps JSON entries under a directory, typically
//     $XDG_CACHE_HOME/mdslides, so repeated conversions of the same deck skip
//     image decoding and rendering.
//   - [NullCache] never stores anything; it backs --no-cache.
//
// Keys are built by a [Keyer] so every caller agrees on the layout of the key
// space:
//
//	keys := cache.NewDefaultKeyer()
//	data, hit, err := c.Get(ctx, keys.ImageKey(path, size, mtime))
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported with hit=false and
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLs used by the pipeline.
const (
	ImageTTL    = 30 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)
