package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nutrilog/iconkit/lang"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	f, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f != nil {
		t.Errorf("Load = %+v, want nil for missing file", f)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "{}\n")

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Cache.Store != StoreNone {
		t.Errorf("Store = %q, want %q", f.Cache.Store, StoreNone)
	}
	if f.StorePath() != "" {
		t.Errorf("StorePath = %q, want empty", f.StorePath())
	}
	if f.Cache.Capacity != 0 {
		t.Errorf("Capacity = %d, want 0 (engine default)", f.Cache.Capacity)
	}
}

func TestLoadStoreDefaults(t *testing.T) {
	tests := []struct {
		store    string
		wantPath string
	}{
		{StoreFile, ".iconkit-cache.yaml"},
		{StoreSQLite, ".iconkit-cache.db"},
	}
	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "cache:\n  store: "+tt.store+"\n")

			f, err := Load(dir)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if f.Cache.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", f.Cache.Path, tt.wantPath)
			}
			if got := f.StorePath(); got != filepath.Join(dir, tt.wantPath) {
				t.Errorf("StorePath = %q", got)
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"unknown store", "cache:\n  store: redis\n"},
		{"negative capacity", "cache:\n  capacity: -5\n"},
		{"bad yaml", "{ cache: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			if _, err := Load(dir); err == nil {
				t.Error("Load: expected error")
			}
		})
	}
}

func TestResolveCatalogBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "{}\n")

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cat, err := f.ResolveCatalog()
	if err != nil {
		t.Fatalf("ResolveCatalog: %v", err)
	}
	if cat.Len() == 0 {
		t.Error("built-in catalog is empty")
	}
}

func TestResolveCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	catalogYAML := `
version: "9"
icons:
  - icon: "🍎"
    key: apple
    tags:
      en: [apple]
`
	if err := os.WriteFile(filepath.Join(dir, "icons.yaml"), []byte(catalogYAML), 0644); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "catalog: icons.yaml\n")

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cat, err := f.ResolveCatalog()
	if err != nil {
		t.Fatalf("ResolveCatalog: %v", err)
	}
	if cat.Len() != 1 || cat.Version() != "9" {
		t.Errorf("catalog Len=%d Version=%q", cat.Len(), cat.Version())
	}
}

func TestResolveCatalogWithTagsDir(t *testing.T) {
	dir := t.TempDir()
	catalogYAML := `
icons:
  - icon: "🍎"
    key: apple
    tags:
      en: [apple]
`
	if err := os.WriteFile(filepath.Join(dir, "icons.yaml"), []byte(catalogYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "tags"), 0755); err != nil {
		t.Fatal(err)
	}
	ruTags := `{"apple": ["яблоко"]}`
	if err := os.WriteFile(filepath.Join(dir, "tags", "ru.json"), []byte(ruTags), 0644); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "catalog: icons.yaml\ntags_dir: tags\n")

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cat, err := f.ResolveCatalog()
	if err != nil {
		t.Fatalf("ResolveCatalog: %v", err)
	}

	if got := cat.Tags("apple", lang.RU); !reflect.DeepEqual(got, []string{"яблоко"}) {
		t.Errorf("apple/ru = %v, want overlay from tags dir", got)
	}
	if got := cat.Tags("apple", lang.EN); !reflect.DeepEqual(got, []string{"apple"}) {
		t.Errorf("apple/en = %v, want catalog file tags", got)
	}
}

func TestResolveCatalogMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "catalog: nowhere.yaml\n")

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := f.ResolveCatalog(); err == nil {
		t.Error("ResolveCatalog: expected error for missing catalog file")
	}
}
