// Package config — .iconkit.yaml project configuration.
//
// When a .iconkit.yaml file exists in the project root it declares where
// the icon catalog lives and how the resolution cache is backed:
//
//	catalog: icons.yaml
//	tags_dir: tags
//	cache:
//	  capacity: 200
//	  store: sqlite
//	  path: .iconkit-cache.db
//
// Every field is optional; without a config file the engine runs on the
// built-in catalog with an in-process cache only.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nutrilog/iconkit/catalog"
)

// FileName is the default config file name.
const FileName = ".iconkit.yaml"

// Cache store backends.
const (
	StoreNone   = "none"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Default cache store paths, relative to the project root.
const (
	defaultFilePath   = ".iconkit-cache.yaml"
	defaultSQLitePath = ".iconkit-cache.db"
)

// File is the top-level .iconkit.yaml structure.
type File struct {
	// Catalog is the path to a YAML catalog file, relative to the project
	// root. Empty selects the built-in catalog.
	Catalog string `yaml:"catalog,omitempty"`
	// TagsDir is a directory of per-locale JSON tag files layered over
	// the catalog's own tag lists.
	TagsDir string `yaml:"tags_dir,omitempty"`
	// Cache configures the resolution cache.
	Cache Cache `yaml:"cache,omitempty"`

	root string
}

// Cache is the cache section.
type Cache struct {
	// Capacity bounds the in-process tier; 0 means the engine default.
	Capacity int `yaml:"capacity,omitempty"`
	// Store selects the durable backend: none, file, or sqlite.
	Store string `yaml:"store,omitempty"`
	// Path is the durable store location relative to the project root.
	Path string `yaml:"path,omitempty"`
}

// Load reads and validates .iconkit.yaml from the given directory.
// Returns nil when no config file exists.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.root = rootDir

	// Defaults and validation.
	if f.Cache.Capacity < 0 {
		return nil, fmt.Errorf("%s: cache capacity must not be negative", path)
	}
	switch f.Cache.Store {
	case "":
		f.Cache.Store = StoreNone
	case StoreNone, StoreFile, StoreSQLite:
	default:
		return nil, fmt.Errorf("%s: unknown cache store %q (valid: none, file, sqlite)",
			path, f.Cache.Store)
	}
	if f.Cache.Path == "" {
		switch f.Cache.Store {
		case StoreFile:
			f.Cache.Path = defaultFilePath
		case StoreSQLite:
			f.Cache.Path = defaultSQLitePath
		}
	}

	return &f, nil
}

// StorePath returns the absolute durable store path, or "" when no durable
// tier is configured.
func (f *File) StorePath() string {
	if f.Cache.Store == StoreNone {
		return ""
	}
	return filepath.Join(f.root, f.Cache.Path)
}

// ResolveCatalog loads the configured catalog: the catalog file (or the
// built-in one), with the tags directory layered on top when set.
func (f *File) ResolveCatalog() (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if f.Catalog != "" {
		cat, err = catalog.LoadFile(filepath.Join(f.root, f.Catalog))
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}

	if f.TagsDir != "" {
		source, err := catalog.LoadTagsDir(filepath.Join(f.root, f.TagsDir))
		if err != nil {
			return nil, err
		}
		cat = cat.OverlayTags(source)
	}

	return cat, nil
}
