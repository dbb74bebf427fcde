// Package store provides durable key-value backends for the resolution
// cache's second tier.
//
// Stores are plain string-to-string maps with prefix deletion; the cache
// layer owns key layout and value encoding. A missing key is (value="",
// found=false, err=nil) — absence is not an error. Two backends ship: a
// YAML file for zero-dependency setups and SQLite for larger libraries.
package store

import "context"

// Store is a durable key-value store. All operations take a context because
// backends may block on I/O; implementations must be safe for concurrent
// use.
type Store interface {
	// Get returns the value for key, reporting whether it was present.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set writes key=value, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// DeletePrefix removes every key that starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// Close releases backend resources.
	Close() error
}
