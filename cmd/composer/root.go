package main

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-composer"
	"github.com/goliatone/go-composer/internal/di"
	"github.com/goliatone/go-composer/internal/logging/console"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	CatalogPath   string
	CatalogSource string
	Pattern       string
	Driver        string
	DSN           string
	HistoryLimit  int
	EscapeHTML    bool
	Verbose       bool
	Format        string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the composer CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "composer",
		Short: "Compose pages from section templates",
		Long:  "Browse a section template catalog, replay editing scripts against a page and inspect saved layouts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.CatalogPath, "catalog", "", "template directory or JSON manifest")
	flags.StringVar(&opts.CatalogSource, "catalog-source", "", "catalog source (directory|manifest), inferred from --catalog when empty")
	flags.StringVar(&opts.Pattern, "pattern", "*.html", "glob for template files in a catalog directory")
	flags.StringVar(&opts.Driver, "driver", "sqlite3", "database driver (sqlite3|postgres)")
	flags.StringVar(&opts.DSN, "db", "", "database DSN; layouts are kept in memory when empty")
	flags.IntVar(&opts.HistoryLimit, "history-limit", 0, "maximum undo snapshots per session (0 keeps all)")
	flags.BoolVar(&opts.EscapeHTML, "escape-html", false, "escape substituted content")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "write debug logs to stderr")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewLayoutsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Config maps the flags onto module configuration.
func (o *RootOptions) Config() composer.Config {
	cfg := composer.DefaultConfig()

	if path := strings.TrimSpace(o.CatalogPath); path != "" {
		cfg.Catalog.Path = path
		cfg.Catalog.Source = o.CatalogSource
		if cfg.Catalog.Source == "" {
			cfg.Catalog.Source = "directory"
			if strings.HasSuffix(strings.ToLower(path), ".json") {
				cfg.Catalog.Source = "manifest"
			}
		}
	}
	if o.Pattern != "" {
		cfg.Catalog.Pattern = o.Pattern
	}
	cfg.History.Limit = o.HistoryLimit
	cfg.Render.EscapeHTML = o.EscapeHTML

	if dsn := strings.TrimSpace(o.DSN); dsn != "" {
		cfg.Features.Persistence = true
		cfg.Features.Styles = true
		cfg.Storage.Driver = o.Driver
		cfg.Storage.DSN = dsn
	}
	return cfg
}

func (o *RootOptions) openModule(cmd *cobra.Command) (*composer.Module, error) {
	opts := []di.Option{}
	if o.Verbose {
		level := console.LevelDebug
		opts = append(opts, di.WithLoggerProvider(console.NewProvider(console.Options{
			Writer:   cmd.ErrOrStderr(),
			MinLevel: &level,
		})))
	}
	return composer.New(o.Config(), opts...)
}
