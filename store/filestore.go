package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// fileVersion is the file store format version.
const fileVersion = 1

// fileDoc is the on-disk YAML structure.
type fileDoc struct {
	Version int               `yaml:"version"`
	Entries map[string]string `yaml:"entries"`
}

// FileStore is a Store backed by a single YAML file. Every write persists
// the whole document, which is fine at cache-file sizes; the in-memory map
// stays authoritative between saves.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// OpenFile loads a file store from path, creating an empty one when the
// file does not exist yet. A document with a different format version is
// discarded rather than migrated — it only holds cache entries.
func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Version == fileVersion && doc.Entries != nil {
		fs.entries = doc.Entries
	}

	return fs, nil
}

// Get implements Store.
func (fs *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	v, ok := fs.entries[key]
	return v, ok, nil
}

// Set implements Store.
func (fs *FileStore) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.entries[key] = value
	return fs.save()
}

// DeletePrefix implements Store.
func (fs *FileStore) DeletePrefix(_ context.Context, prefix string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	removed := false
	for k := range fs.entries {
		if strings.HasPrefix(k, prefix) {
			delete(fs.entries, k)
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return fs.save()
}

// Close implements Store. The file is already persisted on every write.
func (fs *FileStore) Close() error {
	return nil
}

// Len returns the number of stored entries.
func (fs *FileStore) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.entries)
}

// save writes the document to disk. Callers must hold mu.
func (fs *FileStore) save() error {
	doc := fileDoc{Version: fileVersion, Entries: fs.entries}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling cache file: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", fs.path, err)
	}
	return nil
}
