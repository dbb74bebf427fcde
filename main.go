// iconkit — Food icon resolution engine: maps food names to catalog icons.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutrilog/iconkit/config"
	"github.com/nutrilog/iconkit/engine"
	"github.com/nutrilog/iconkit/i18n"
	"github.com/nutrilog/iconkit/lang"
	"github.com/nutrilog/iconkit/search"
	"github.com/nutrilog/iconkit/store"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "iconkit",
		Short: "Food icon resolution: match food names to pictographic icons",
		Long: `iconkit — Food icon resolution engine.

Maps free-text food names (English, Russian, or Hebrew) to a single icon
from a fixed catalog, with script classification, deterministic scoring,
and a two-tier resolution cache.

Commands:
  status      Show catalog and cache configuration
  classify    Classify a name's language by dominant script
  resolve     Resolve a food name to its icon
  search      Filter food names by icon tag phrase
  cache       Manage the resolution cache

Configuration is read from .iconkit.yaml in the project root when present;
without it the built-in catalog and an in-process cache are used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newStatusCmd(),
		newClassifyCmd(),
		newResolveCmd(),
		newSearchCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// buildEngine assembles an engine from .iconkit.yaml (or defaults). The
// returned cleanup closes the durable store when one was opened.
func buildEngine(root string) (*engine.Engine, func(), error) {
	cleanup := func() {}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, cleanup, err
	}

	var opts engine.Options
	if cfg != nil {
		cat, err := cfg.ResolveCatalog()
		if err != nil {
			return nil, cleanup, err
		}
		opts.Catalog = cat
		opts.CacheCapacity = cfg.Cache.Capacity

		if path := cfg.StorePath(); path != "" {
			var s store.Store
			switch cfg.Cache.Store {
			case config.StoreFile:
				s, err = store.OpenFile(path)
			case config.StoreSQLite:
				s, err = store.OpenSQLite(path)
			}
			if err != nil {
				return nil, cleanup, err
			}
			opts.Store = s
			cleanup = func() { s.Close() }
		}
	}

	e, err := engine.New(opts)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return e, cleanup, nil
}

// ---------------------------------------------------------------------------
// status (read-only: catalog info + cache configuration)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog and cache configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := buildEngine(rootDir)
			if err != nil {
				return err
			}
			defer cleanup()

			cat := e.Catalog()
			fmt.Printf(i18n.T("Catalog: %d icons (version %s)")+"\n", cat.Len(), cat.Version())

			for _, locale := range lang.Supported() {
				tagged := 0
				for _, def := range cat.Definitions() {
					if len(cat.Tags(def.TagKey, locale)) > 0 {
						tagged++
					}
				}
				meta := lang.MetaFor(locale)
				fmt.Printf("  %s %-3s %d/%d icons tagged\n", meta.Flag, locale, tagged, cat.Len())
			}

			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			switch {
			case cfg == nil:
				logInfo("no %s — built-in catalog, in-process cache only", config.FileName)
			case cfg.Cache.Store == config.StoreNone:
				logInfo("cache store: none")
			default:
				logInfo("cache store: %s (%s)", cfg.Cache.Store, cfg.StorePath())
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// classify (script classification only)
// ---------------------------------------------------------------------------

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <name>",
		Short: "Classify a name's language by dominant script",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := strings.Join(args, " ")
			code := lang.Classify(text)
			meta := lang.MetaFor(code)
			fmt.Printf(i18n.T("Language: %s")+"\n", fmt.Sprintf("%s %s (%s)", meta.Flag, code, meta.Name))
		},
	}
}

// ---------------------------------------------------------------------------
// resolve (name -> icon)
// ---------------------------------------------------------------------------

func newResolveCmd() *cobra.Command {
	var localeFlag string

	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a food name to its icon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := buildEngine(rootDir)
			if err != nil {
				return err
			}
			defer cleanup()

			name := strings.Join(args, " ")
			var locales []lang.Code
			if localeFlag != "" {
				code, ok := lang.Resolve(localeFlag)
				if !ok {
					return fmt.Errorf("unsupported locale %q (valid: %v)", localeFlag, lang.Supported())
				}
				locales = append(locales, code)
			}

			icon, ok := e.ResolveIcon(cmd.Context(), name, locales...)
			if !ok {
				logWarning("%s", i18n.T("No icon found"))
				return nil
			}
			fmt.Printf(i18n.T("Icon: %s")+"\n", icon)
			return nil
		},
	}

	cmd.Flags().StringVarP(&localeFlag, "locale", "l", "", "Locale override (en, ru, he); default: classify the name")
	return cmd
}

// ---------------------------------------------------------------------------
// search (reverse tag search over a list of names)
// ---------------------------------------------------------------------------

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <phrase> [name ...]",
		Short: "Filter food names by icon tag phrase",
		Long: `Filter a list of food names, keeping those whose resolved icon carries a
tag containing the phrase in any supported language. Names are taken from
the arguments, or read one per line from stdin when none are given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := buildEngine(rootDir)
			if err != nil {
				return err
			}
			defer cleanup()

			items := itemsFromNames(args[1:])
			if len(items) == 0 {
				items, err = readItems(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			matches := e.FindByTagPhrase(cmd.Context(), args[0], items)
			for _, item := range matches {
				icon, _ := e.ResolveIcon(cmd.Context(), item.Name)
				fmt.Printf("%s %s\n", icon, item.Name)
			}
			logInfo(i18n.N("Matched %d item", "Matched %d items", len(matches)), len(matches))
			return nil
		},
	}
}

// itemsFromNames converts name arguments into search items, dropping
// blank entries.
func itemsFromNames(names []string) []search.Item {
	var items []search.Item
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		items = append(items, search.Item{Name: name})
	}
	return items
}

// readItems reads one food name per line.
func readItems(r io.Reader) ([]search.Item, error) {
	var items []search.Item
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, search.Item{Name: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading names: %w", err)
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// cache (clear the in-process tier, purge the durable tier)
// ---------------------------------------------------------------------------

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the resolution cache",
	}
	cmd.AddCommand(newCacheClearCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var durable bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the resolution cache",
		Long: `Clear the in-process cache tier. With --durable, also bulk-delete the
durable store's entries for the current catalog version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := buildEngine(rootDir)
			if err != nil {
				return err
			}
			defer cleanup()

			e.ClearCache()
			logSuccess("%s", i18n.T("Cache cleared"))

			if durable {
				if err := e.PurgeDurableCache(cmd.Context()); err != nil {
					return err
				}
				logSuccess("%s", i18n.T("Durable cache purged"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&durable, "durable", false, "Also purge the durable store")
	return cmd
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("iconkit version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}
