package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nutrilog/iconkit/catalog"
	"github.com/nutrilog/iconkit/lang"
	"github.com/nutrilog/iconkit/search"
	"github.com/nutrilog/iconkit/store"
)

// twoIconCatalog is the apple/bread scenario catalog.
func twoIconCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Definition{
			{Icon: "🍎", TagKey: "apple"},
			{Icon: "🍞", TagKey: "bread"},
		},
		catalog.MapSource{
			"apple": {lang.EN: {"apple", "apples"}},
			"bread": {lang.EN: {"bread", "toast"}},
		},
		"1",
	)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	e, err := New(Options{Catalog: twoIconCatalog(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// "Apple Pie" classifies as en; "apple" matches as a whole word.
	if got := e.ClassifyLanguage("Apple Pie"); got != lang.EN {
		t.Errorf("ClassifyLanguage = %q, want en", got)
	}
	if icon, ok := e.ResolveIcon(ctx, "Apple Pie"); !ok || icon != "🍎" {
		t.Errorf("ResolveIcon(Apple Pie) = (%q, %v), want (🍎, true)", icon, ok)
	}

	if icon, ok := e.ResolveIcon(ctx, "xyz123"); ok || icon != "" {
		t.Errorf("ResolveIcon(xyz123) = (%q, %v), want no match", icon, ok)
	}

	items := []search.Item{{Name: "White Bread"}, {Name: "Apple"}}
	got := e.FindByTagPhrase(ctx, "bread", items)
	if len(got) != 1 || got[0].Name != "White Bread" {
		t.Errorf("FindByTagPhrase(bread) = %v, want [White Bread]", got)
	}
}

func TestDefaultCatalog(t *testing.T) {
	ctx := context.Background()
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"Chicken Breast", "🍗"},
		{"Куриная грудка", "🍗"},
		{"חזה עוף", "🍗"},
		{"Борщ", "🍲"},
		{"White Bread", "🍞"},
	}
	for _, tt := range tests {
		icon, ok := e.ResolveIcon(ctx, tt.name)
		if !ok || icon != tt.want {
			t.Errorf("ResolveIcon(%q) = (%q, %v), want (%q, true)", tt.name, icon, ok, tt.want)
		}
	}
}

func TestResolveIconExplicitLocale(t *testing.T) {
	ctx := context.Background()
	e, err := New(Options{Catalog: twoIconCatalog(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The explicit locale overrides classification; bread has only en
	// tags, so the ru locale falls back to them.
	if icon, ok := e.ResolveIcon(ctx, "toast", lang.RU); !ok || icon != "🍞" {
		t.Errorf("ResolveIcon(toast, ru) = (%q, %v)", icon, ok)
	}
}

func TestResolvedIconAlwaysInCatalog(t *testing.T) {
	ctx := context.Background()
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	names := []string{"Apple", "Хлеб", "חלב", "Granola Bar", "Nonsense qqq"}
	for _, name := range names {
		if icon, ok := e.ResolveIcon(ctx, name); ok && !e.Catalog().Contains(icon) {
			t.Errorf("ResolveIcon(%q) returned %q, not in catalog", name, icon)
		}
	}
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	e, err := New(Options{Catalog: twoIconCatalog(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e.ResolveIcon(ctx, "apple")
	e.ResolveIcon(ctx, "toast")
	if e.CacheLen() != 2 {
		t.Fatalf("CacheLen = %d, want 2", e.CacheLen())
	}
	e.ClearCache()
	if e.CacheLen() != 0 {
		t.Errorf("CacheLen after ClearCache = %d, want 0", e.CacheLen())
	}
}

func TestEngineWithDurableStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenFile(filepath.Join(t.TempDir(), "cache.yaml"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	e1, err := New(Options{Catalog: twoIconCatalog(t), Store: s})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if icon, ok := e1.ResolveIcon(ctx, "Apple Pie"); !ok || icon != "🍎" {
		t.Fatalf("ResolveIcon = (%q, %v)", icon, ok)
	}

	// A second engine over the same store serves the durable entry even
	// with a cold in-process tier.
	e2, err := New(Options{Catalog: twoIconCatalog(t), Store: s})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if icon, ok := e2.ResolveIcon(ctx, "Apple Pie"); !ok || icon != "🍎" {
		t.Errorf("durable ResolveIcon = (%q, %v)", icon, ok)
	}

	if err := e2.PurgeDurableCache(ctx); err != nil {
		t.Errorf("PurgeDurableCache: %v", err)
	}
}
