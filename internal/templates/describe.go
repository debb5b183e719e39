package templates

import (
	"github.com/goliatone/go-composer/internal/markdown"
)

var descriptionParser = markdown.NewGoldmarkParser(markdown.ParseOptions{SafeMode: true})

// DescriptionHTML renders the template description, written in Markdown, to
// HTML for catalog previews. Raw HTML in the description is dropped.
func DescriptionHTML(tpl Template) (string, error) {
	if tpl.Description == "" {
		return "", nil
	}
	out, err := descriptionParser.Parse([]byte(tpl.Description))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
