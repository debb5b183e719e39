package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// TemplateFrontMatter is the metadata block at the top of a template file.
type TemplateFrontMatter struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Category    string            `yaml:"category"`
	Description string            `yaml:"description"`
	Elements    []string          `yaml:"elements"`
	Defaults    map[string]string `yaml:"defaults"`
	Custom      map[string]any    `yaml:",inline"`
}

// ParseFrontMatter extracts the template metadata and the markup body from
// the provided source bytes. Files without front matter yield an empty
// envelope and the full source as body.
func ParseFrontMatter(source []byte) (TemplateFrontMatter, []byte, error) {
	var meta TemplateFrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return TemplateFrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if meta.Defaults == nil {
		meta.Defaults = map[string]string{}
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, bytes.TrimSpace(body), nil
}
