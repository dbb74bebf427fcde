// Package cache memoizes icon resolutions behind a two-tier cache.
//
// Tier 1 is a bounded in-process map; on overflow the whole map is cleared
// rather than evicting per entry. That keeps inserts O(1) with no recency
// bookkeeping, at the cost of an occasional cache-wide cold start — list
// rendering re-warms it within one pass.
//
// Tier 2 is an optional durable store, read-through and write-through.
// Durable keys carry a catalog version prefix so a catalog change across
// releases invalidates old entries by prefix, without scanning. Store
// failures never surface: a failed read is a miss, a failed write a no-op.
//
// Negative results are cached too. "No icon for this name" is a computed
// answer and must not be recomputed on every list row.
package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nutrilog/iconkit/lang"
	"github.com/nutrilog/iconkit/match"
	"github.com/nutrilog/iconkit/store"
)

// DefaultCapacity bounds tier 1 when no capacity is configured.
const DefaultCapacity = 200

// Resolver computes an icon for a normalized name. *match.Matcher is the
// production implementation; tests substitute counting stubs.
type Resolver interface {
	Resolve(name string, locale lang.Code) (icon string, ok bool)
}

// entry records a resolution outcome. found=false is a deliberate
// no-match, distinct from "not yet computed" (absence from the map).
type entry struct {
	icon  string
	found bool
}

// durableValue is the tier-2 serialization: {"icon": "🍎"} or {"icon": null}.
type durableValue struct {
	Icon *string `json:"icon"`
}

// Cache is a two-tier resolution cache. Safe for concurrent use; the
// single mutex covers tier-1 reads, inserts, and clears. Concurrent
// callers may both compute the same cold key — resolution is cheap and
// idempotent, so the last writer wins and both get the same answer.
type Cache struct {
	resolver Resolver
	durable  store.Store // nil when no durable tier is configured
	prefix   string      // durable key namespace, e.g. "iconcache/v1/"
	capacity int

	mu      sync.Mutex
	entries map[string]entry
}

// New builds a cache over resolver. capacity <= 0 selects DefaultCapacity.
// durable may be nil; version namespaces durable keys and must change when
// the catalog does.
func New(resolver Resolver, capacity int, version string, durable store.Store) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if version == "" {
		version = "1"
	}
	return &Cache{
		resolver: resolver,
		durable:  durable,
		prefix:   "iconcache/v" + version + "/",
		capacity: capacity,
		entries:  make(map[string]entry),
	}
}

// Key builds the cache key for a locale and an already-normalized name.
func Key(locale lang.Code, normalized string) string {
	return string(locale) + "_" + normalized
}

// GetOrResolve returns the icon for name in locale, computing and caching
// it on first use. The context only gates the durable tier; without one
// the call never blocks.
func (c *Cache) GetOrResolve(ctx context.Context, name string, locale lang.Code) (string, bool) {
	norm := match.Normalize(name)
	key := Key(locale, norm)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.icon, e.found
	}
	c.mu.Unlock()

	if e, ok := c.durableGet(ctx, key); ok {
		c.insert(key, e)
		return e.icon, e.found
	}

	icon, found := c.resolver.Resolve(norm, locale)
	e := entry{icon: icon, found: found}
	c.insert(key, e)
	c.durableSet(ctx, key, e)
	return icon, found
}

// Clear empties tier 1. The durable tier is untouched; use PurgeDurable
// for a bulk delete of this cache's namespace.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// PurgeDurable bulk-deletes this cache's durable entries by version
// prefix. No-op without a durable tier.
func (c *Cache) PurgeDurable(ctx context.Context) error {
	if c.durable == nil {
		return nil
	}
	return c.durable.DeletePrefix(ctx, c.prefix)
}

// Len returns the tier-1 entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// insert stores an entry, applying the whole-cache eviction rule: when the
// insert would push tier 1 past capacity, the map is cleared first.
func (c *Cache) insert(key string, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries)+1 > c.capacity {
		c.entries = make(map[string]entry)
	}
	c.entries[key] = e
}

// durableGet consults tier 2. Any store error reads as a miss.
func (c *Cache) durableGet(ctx context.Context, key string) (entry, bool) {
	if c.durable == nil {
		return entry{}, false
	}
	raw, found, err := c.durable.Get(ctx, c.prefix+key)
	if err != nil || !found {
		return entry{}, false
	}

	var v durableValue
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return entry{}, false
	}
	if v.Icon == nil {
		return entry{found: false}, true
	}
	return entry{icon: *v.Icon, found: true}, true
}

// durableSet writes through to tier 2. Write errors are dropped: the
// in-process tier stays authoritative for the session.
func (c *Cache) durableSet(ctx context.Context, key string, e entry) {
	if c.durable == nil {
		return
	}

	var v durableValue
	if e.found {
		icon := e.icon
		v.Icon = &icon
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.durable.Set(ctx, c.prefix+key, string(raw))
}
