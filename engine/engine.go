// Package engine assembles the icon resolution pipeline behind one public
// surface: classify a name's language, resolve a name to an icon, search a
// library by tag phrase, clear the cache.
//
// An Engine is an explicit instance, not package state: construct one per
// catalog (and a fresh one per test) and share it by reference. All
// methods are safe for concurrent use.
package engine

import (
	"context"
	"fmt"

	"github.com/nutrilog/iconkit/cache"
	"github.com/nutrilog/iconkit/catalog"
	"github.com/nutrilog/iconkit/lang"
	"github.com/nutrilog/iconkit/match"
	"github.com/nutrilog/iconkit/search"
	"github.com/nutrilog/iconkit/store"
)

// Options configures engine construction. The zero value works: built-in
// catalog, default capacity, no durable tier.
type Options struct {
	// Catalog overrides the built-in icon catalog.
	Catalog *catalog.Catalog
	// CacheCapacity bounds the in-process cache tier; <= 0 means the
	// default (cache.DefaultCapacity).
	CacheCapacity int
	// Store enables the durable cache tier. The engine does not close it.
	Store store.Store
}

// Engine is the assembled resolution pipeline.
type Engine struct {
	cat      *catalog.Catalog
	cache    *cache.Cache
	searcher *search.Searcher
}

// New builds an engine from opts.
func New(opts Options) (*Engine, error) {
	cat := opts.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
	}

	c := cache.New(match.New(cat), opts.CacheCapacity, cat.Version(), opts.Store)
	return &Engine{
		cat:      cat,
		cache:    c,
		searcher: search.New(cat, c),
	}, nil
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// ClassifyLanguage classifies text by dominant script.
func (e *Engine) ClassifyLanguage(text string) lang.Code {
	return lang.Classify(text)
}

// ResolveIcon maps a food name to an icon. When locale is omitted it is
// derived from the name's script. Results, including no-match, are cached;
// the context gates only the durable tier, so without a configured store
// the call never blocks.
func (e *Engine) ResolveIcon(ctx context.Context, name string, locale ...lang.Code) (string, bool) {
	var loc lang.Code
	if len(locale) > 0 && lang.Valid(locale[0]) {
		loc = locale[0]
	} else {
		loc = lang.Classify(name)
	}
	return e.cache.GetOrResolve(ctx, name, loc)
}

// FindByTagPhrase returns the items whose resolved icon carries a tag
// containing phrase in any supported locale, preserving input order.
func (e *Engine) FindByTagPhrase(ctx context.Context, phrase string, items []search.Item) []search.Item {
	return e.searcher.FindByTagPhrase(ctx, phrase, items)
}

// ClearCache empties the in-process cache tier. Durable entries are left
// alone; use PurgeDurableCache for those.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// PurgeDurableCache bulk-deletes the durable tier's entries for this
// catalog version. No-op without a durable store.
func (e *Engine) PurgeDurableCache(ctx context.Context) error {
	return e.cache.PurgeDurable(ctx)
}

// CacheLen returns the in-process cache entry count.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}
