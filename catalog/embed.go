package catalog

import (
	_ "embed"
	"fmt"
	"sync"
)

// builtin embeds the default catalog shipped with the engine so resolution
// works with zero configuration.
//
//go:embed data/catalog.yaml
var builtin []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the built-in catalog. The embedded data is parsed once;
// a parse failure means the shipped data file is broken, which is a build
// defect, so the error is surfaced rather than hidden.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(builtin)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("built-in catalog: %w", defaultErr)
		}
	})
	return defaultCat, defaultErr
}
