package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nutrilog/iconkit/lang"
)

// ---------------------------------------------------------------------------
// YAML catalog file
// ---------------------------------------------------------------------------

// catalogFile is the on-disk YAML schema:
//
//	version: "2026-01"
//	icons:
//	  - icon: "🍎"
//	    key: apple
//	    tags:
//	      en: [apple, apples]
//	      ru: [яблоко, яблоки]
//	      he: [תפוח]
//
// Tag values are declared as map[string]any because localization exports
// are not trustworthy: values may be lists, single strings, or garbage.
type catalogFile struct {
	Version string      `yaml:"version"`
	Icons   []entryFile `yaml:"icons"`
}

type entryFile struct {
	Icon string         `yaml:"icon"`
	Key  string         `yaml:"key"`
	Tags map[string]any `yaml:"tags"`
}

// LoadFile reads and parses a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Parse parses YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	defs := make([]Definition, 0, len(cf.Icons))
	source := make(MapSource, len(cf.Icons))
	for _, e := range cf.Icons {
		defs = append(defs, Definition{Icon: e.Icon, TagKey: e.Key})
		source[e.Key] = coerceLocales(e.Tags)
	}

	return New(defs, source, cf.Version)
}

// coerceLocales maps raw locale keys onto the supported set and coerces
// each payload. Unknown locale keys are dropped.
func coerceLocales(raw map[string]any) map[lang.Code][]string {
	out := make(map[lang.Code][]string, len(raw))
	for key, payload := range raw {
		code, ok := lang.Resolve(key)
		if !ok {
			continue
		}
		if tags := CoerceTags(payload); len(tags) > 0 {
			out[code] = tags
		}
	}
	return out
}

// CoerceTags validates a dynamic tag payload and flattens it to a clean
// string list: entries are trimmed, lowercased, deduplicated, and kept in
// source order. Non-string elements and malformed payloads yield nothing —
// a bad localization entry must never surface as a matcher error.
func CoerceTags(payload any) []string {
	var raw []any
	switch v := payload.(type) {
	case nil:
		return nil
	case string:
		raw = []any{v}
	case []any:
		raw = v
	case []string:
		for _, s := range v {
			raw = append(raw, s)
		}
	default:
		return nil
	}

	var out []string
	seen := make(map[string]bool, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ---------------------------------------------------------------------------
// Per-locale JSON tag directories
// ---------------------------------------------------------------------------

// LoadTagsDir reads an i18next-style directory of per-locale JSON files
// (en.json, ru.json, he.json) where each file maps tag keys to tag lists:
//
//	{ "apple": ["apple", "apples"], "bread": ["bread", "toast"] }
//
// Files whose name does not resolve to a supported locale are skipped.
// Missing directories are an error; malformed values inside a file are not.
func LoadTagsDir(dir string) (MapSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	source := make(MapSource)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		code, ok := lang.Resolve(strings.TrimSuffix(name, ".json"))
		if !ok {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		for key, payload := range raw {
			tags := CoerceTags(payload)
			if len(tags) == 0 {
				continue
			}
			if source[key] == nil {
				source[key] = make(map[lang.Code][]string)
			}
			source[key][code] = tags
		}
	}

	return source, nil
}
