// Package cache provides a local cache for rendered graph artifacts.
//
// Rendering the dependency graph through Graphviz is the only expensive
// stage in topoplan, so rendered SVG/PNG bytes are cached on disk keyed by a
// hash of the DOT source and the output format. Re-rendering an unchanged
// declaration is then a file read.
//
// Two backends are provided: [FileCache] for normal CLI use and [NullCache]
// when caching is disabled (--no-cache).
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact from the DOT
// source hash and output format. Different formats of the same graph cache
// independently.
func ArtifactKey(dotHash, format string) string {
	return hashKey("artifact", dotHash, format)
}
