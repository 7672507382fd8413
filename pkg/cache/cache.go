// Package cache stores rendered artifacts keyed by scene content and
// render options.
//
// [Cache] is a small byte-oriented interface with four backends:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one JSON file per entry under the XDG cache dir
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the render options
// together with the scene hash so any change to either is a miss.
// [ScopedKeyer] adds a prefix for callers that share one backend.
//
// Remote backends wrap transient network failures with [Retryable] and run
// their operations through [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that change an artifact's bytes
// without changing the scene.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Seed   uint64  `json:"seed"`
	Scale  float64 `json:"scale,omitempty"`
	Style  string  `json:"style,omitempty"`
}

// DefaultKeyer is the standard key layout: "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the scene hash with opts.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
