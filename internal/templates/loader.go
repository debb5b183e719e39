package templates

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/markdown"
	"github.com/goliatone/go-composer/internal/validation"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// DefaultPattern matches template files when no pattern is configured.
const DefaultPattern = "*.html"

type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used for load diagnostics.
func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader reads template definitions from files or manifests. Loaders only
// produce template lists; callers build the Catalog from the result.
type Loader struct {
	logger interfaces.Logger
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// LoadDirectory reads templates with a default loader.
func LoadDirectory(fsys fs.FS, pattern string) ([]Template, error) {
	return NewLoader().Directory(fsys, pattern)
}

// LoadManifest reads a JSON manifest with a default loader.
func LoadManifest(r io.Reader) ([]Template, error) {
	return NewLoader().Manifest(r)
}

// Directory loads every file matching pattern. Each file carries YAML front
// matter with the template metadata; the body is the markup. Files are
// visited in lexical order so catalog order is stable.
func (l *Loader) Directory(fsys fs.FS, pattern string) ([]Template, error) {
	if fsys == nil {
		return nil, fmt.Errorf("templates: filesystem is required")
	}
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("templates: glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	out := make([]Template, 0, len(matches))
	for _, name := range matches {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("templates: read %s: %w", name, err)
		}
		tpl, err := fromFile(name, raw)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("catalog.template.loaded", "file", name, "template_id", tpl.ID, "category", tpl.Category)
		out = append(out, tpl)
	}
	l.logger.Info("catalog.directory.loaded", "pattern", pattern, "count", len(out))
	return out, nil
}

// Manifest loads a JSON document of the form {"templates": [...]} after
// validating it against the manifest schema.
func (l *Loader) Manifest(r io.Reader) ([]Template, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader is required", ErrManifestInvalid)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("templates: read manifest: %w", err)
	}
	if err := validation.ValidateCatalogManifest(raw); err != nil {
		l.logger.Warn("catalog.manifest.invalid", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrManifestInvalid, err)
	}

	var doc struct {
		Templates []Template `json:"templates"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestInvalid, err)
	}

	out := make([]Template, 0, len(doc.Templates))
	for _, tpl := range doc.Templates {
		normalized, err := normalizeTemplate(tpl)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	l.logger.Info("catalog.manifest.loaded", "count", len(out))
	return out, nil
}

func fromFile(name string, raw []byte) (Template, error) {
	meta, body, err := markdown.ParseFrontMatter(raw)
	if err != nil {
		return Template{}, fmt.Errorf("templates: %s: %w", name, err)
	}
	tpl := Template{
		ID:          meta.ID,
		Name:        meta.Name,
		Category:    meta.Category,
		Description: meta.Description,
		Markup:      string(body),
		Elements:    meta.Elements,
		Defaults:    meta.Defaults,
	}
	if strings.TrimSpace(tpl.Name) == "" {
		base := path.Base(name)
		tpl.Name = strings.TrimSuffix(base, path.Ext(base))
	}
	normalized, err := normalizeTemplate(tpl)
	if err != nil {
		return Template{}, fmt.Errorf("templates: %s: %w", name, err)
	}
	return normalized, nil
}

// normalizeTemplate derives a missing id from the name and canonicalises the
// category with the slug rules.
func normalizeTemplate(tpl Template) (Template, error) {
	tpl.Name = strings.TrimSpace(tpl.Name)
	if tpl.Name == "" {
		return Template{}, ErrTemplateNameMissing
	}
	tpl.ID = strings.TrimSpace(tpl.ID)
	if tpl.ID == "" {
		id, err := slug.Normalize(tpl.Name)
		if err != nil || id == "" {
			return Template{}, fmt.Errorf("%w (name %q)", ErrTemplateIDRequired, tpl.Name)
		}
		tpl.ID = id
	}
	if category := strings.TrimSpace(tpl.Category); category != "" {
		normalized, err := slug.Normalize(category)
		if err == nil && normalized != "" {
			category = normalized
		}
		tpl.Category = category
	}
	if tpl.Defaults == nil {
		tpl.Defaults = map[string]string{}
	}
	return tpl, nil
}
