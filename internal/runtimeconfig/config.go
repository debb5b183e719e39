package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-composer/internal/history"
)

var ErrCatalogSourceInvalid = errors.New("composer config: catalog source must be one of memory, directory or manifest")
var ErrCatalogPathRequired = errors.New("composer config: catalog path is required for directory and manifest sources")
var ErrHistoryLimitInvalid = errors.New("composer config: history limit must be zero or at least two")
var ErrThemeVariantWithoutPath = errors.New("composer config: theme variant requires a theme path")
var ErrStorageDriverUnknown = errors.New("composer config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("composer config: storage dsn is required when persistence is enabled")
var ErrLoggingProviderRequired = errors.New("composer config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("composer config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("composer config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("composer config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the composer module.
type Config struct {
	Catalog  CatalogConfig
	History  HistoryConfig
	Render   RenderConfig
	Storage  StorageConfig
	Styles   StylesConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	Features Features
}

// CatalogConfig describes where section templates are read from.
type CatalogConfig struct {
	// Source is one of "memory", "directory" or "manifest".
	Source  string
	Path    string
	Pattern string
}

// HistoryConfig bounds the undo/redo history kept per editing session.
type HistoryConfig struct {
	// Limit caps retained snapshots. Zero keeps every snapshot.
	Limit int
}

// RenderConfig toggles placeholder resolution behaviour.
type RenderConfig struct {
	EscapeHTML bool
}

// StorageConfig selects the database backing saved layouts and styles.
type StorageConfig struct {
	Driver string
	DSN    string
}

// StylesConfig points at a go-theme manifest whose tokens seed every style
// store as defaults.
type StylesConfig struct {
	// ThemePath is a directory holding theme.json, theme.yaml or theme.yml.
	ThemePath string
	// Variant selects manifest variant tokens layered over the base tokens.
	Variant string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles module functionality.
type Features struct {
	Persistence bool
	Styles      bool
	Logger      bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns in-memory defaults suitable for tests and embedding.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{
			Source:  "memory",
			Pattern: "*.html",
		},
		History: HistoryConfig{},
		Render:  RenderConfig{},
		Storage: StorageConfig{
			Driver: "sqlite3",
			DSN:    "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	source := strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))
	switch source {
	case "", "memory":
	case "directory", "manifest":
		if strings.TrimSpace(cfg.Catalog.Path) == "" {
			return fmt.Errorf("%w: %s", ErrCatalogPathRequired, source)
		}
	default:
		return fmt.Errorf("%w: %s", ErrCatalogSourceInvalid, source)
	}
	if cfg.History.Limit < 0 || (cfg.History.Limit > 0 && cfg.History.Limit < history.MinLimit) {
		return fmt.Errorf("%w: %d", ErrHistoryLimitInvalid, cfg.History.Limit)
	}
	if strings.TrimSpace(cfg.Styles.Variant) != "" && strings.TrimSpace(cfg.Styles.ThemePath) == "" {
		return ErrThemeVariantWithoutPath
	}
	if cfg.Features.Persistence || cfg.Features.Styles {
		driver := NormalizeDriver(cfg.Storage.Driver)
		if !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// NormalizeDriver maps driver aliases onto the canonical driver names.
func NormalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return "sqlite3"
	case "postgres", "postgresql", "pg":
		return "postgres"
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}

func isSupportedDriver(driver string) bool {
	return driver == "sqlite3" || driver == "postgres"
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
