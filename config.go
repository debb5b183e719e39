package composer

import "github.com/goliatone/go-composer/internal/runtimeconfig"

var (
	ErrCatalogSourceInvalid    = runtimeconfig.ErrCatalogSourceInvalid
	ErrCatalogPathRequired     = runtimeconfig.ErrCatalogPathRequired
	ErrHistoryLimitInvalid     = runtimeconfig.ErrHistoryLimitInvalid
	ErrThemeVariantWithoutPath = runtimeconfig.ErrThemeVariantWithoutPath
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	CatalogConfig = runtimeconfig.CatalogConfig
	HistoryConfig = runtimeconfig.HistoryConfig
	RenderConfig  = runtimeconfig.RenderConfig
	StorageConfig = runtimeconfig.StorageConfig
	StylesConfig  = runtimeconfig.StylesConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
