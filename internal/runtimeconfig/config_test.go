package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-composer/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_CatalogSource(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Catalog.Source = "s3"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCatalogSourceInvalid) {
		t.Fatalf("expected ErrCatalogSourceInvalid, got %v", err)
	}

	cfg.Catalog.Source = "directory"
	cfg.Catalog.Path = " "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCatalogPathRequired) {
		t.Fatalf("expected ErrCatalogPathRequired, got %v", err)
	}

	cfg.Catalog.Path = "templates"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected directory source with path to validate, got %v", err)
	}
}

func TestConfigValidate_HistoryLimit(t *testing.T) {
	for _, limit := range []int{-1, 1} {
		cfg := runtimeconfig.DefaultConfig()
		cfg.History.Limit = limit
		if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrHistoryLimitInvalid) {
			t.Fatalf("limit %d: expected ErrHistoryLimitInvalid, got %v", limit, err)
		}
	}
	cfg := runtimeconfig.DefaultConfig()
	cfg.History.Limit = 50
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected limit 50 to validate, got %v", err)
	}
}

func TestConfigValidate_ThemeVariantNeedsPath(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Styles.Variant = "dark"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrThemeVariantWithoutPath) {
		t.Fatalf("expected ErrThemeVariantWithoutPath, got %v", err)
	}

	cfg.Styles.ThemePath = "themes/harbor"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected theme with variant to validate, got %v", err)
	}
}

func TestConfigValidate_StorageWhenPersistenceEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Persistence = true
	cfg.Storage.Driver = "mongo"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}

	cfg.Storage.Driver = "postgresql"
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestNormalizeDriver(t *testing.T) {
	cases := map[string]string{
		"sqlite":   "sqlite3",
		" SQLite3": "sqlite3",
		"pg":       "postgres",
		"Postgres": "postgres",
	}
	for in, want := range cases {
		if got := runtimeconfig.NormalizeDriver(in); got != want {
			t.Fatalf("NormalizeDriver(%q) = %q, want %q", in, got, want)
		}
	}
}
