package logging

import (
	"strings"

	"github.com/goliatone/go-composer/pkg/interfaces"
)

const (
	rootModule     = "composer"
	sessionModule  = "composer.session"
	catalogModule  = "composer.catalog"
	layoutsModule  = "composer.layouts"
	stylesModule   = "composer.styles"
	fieldPageKey   = "page_key"
	fieldSectionID = "section_id"
	fieldOperation = "operation"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SessionLogger returns the logger namespace reserved for editing sessions.
func SessionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sessionModule)
}

// CatalogLogger returns the logger namespace reserved for template catalog loading.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// LayoutsLogger returns the logger namespace reserved for layout persistence.
func LayoutsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, layoutsModule)
}

// StylesLogger returns the logger namespace reserved for the style settings store.
func StylesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, stylesModule)
}

// WithSessionContext enriches the logger with the page key, section id and
// operation of an editing action. Empty values are ignored.
func WithSessionContext(logger interfaces.Logger, pageKey, sectionID, operation string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageKey); trimmed != "" {
		fields[fieldPageKey] = trimmed
	}
	if trimmed := strings.TrimSpace(sectionID); trimmed != "" {
		fields[fieldSectionID] = trimmed
	}
	if trimmed := strings.TrimSpace(operation); trimmed != "" {
		fields[fieldOperation] = trimmed
	}
	return WithFields(logger, fields)
}
