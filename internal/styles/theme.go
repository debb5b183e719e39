package styles

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

var ErrThemeVariantUnknown = errors.New("styles: theme variant not declared in manifest")

// LoadTheme reads the theme manifest (theme.json, theme.yaml or theme.yml)
// found in dir and validates it.
func LoadTheme(fsys fs.FS, dir string) (*gotheme.Manifest, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	manifest, err := gotheme.LoadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("styles: load theme: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("styles: theme %q: %w", manifest.Name, err)
	}
	return manifest, nil
}

// ThemeDefaults returns the manifest tokens for variant, variant tokens
// taking precedence over the base set. An empty variant selects the base
// tokens.
func ThemeDefaults(manifest *gotheme.Manifest, variant string) (Settings, error) {
	if manifest == nil {
		return Settings{}, nil
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrThemeVariantUnknown, variant)
		}
	}
	return Settings(manifest.TokensForVariant(variant)), nil
}
