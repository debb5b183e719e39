package layouts

import (
	"maps"
	"regexp"
	"strings"

	"github.com/goliatone/go-composer/internal/identity"
	cmssections "github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
)

var pageKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_/.-]*$`)

// NormalizePageKey trims and lowercases page keys.
func NormalizePageKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// IDForPageKey derives the deterministic layout id of a page.
func IDForPageKey(key string) uuid.UUID {
	return identity.LayoutUUID(NormalizePageKey(key))
}

// StoredSections converts a snapshot into its persisted form.
func StoredSections(snapshot cmssections.Snapshot) []StoredSection {
	list := snapshot.Sections()
	out := make([]StoredSection, len(list))
	for i, section := range list {
		out[i] = StoredSection{
			ID:          section.ID,
			TemplateID:  section.Template.ID,
			TemplateRef: identity.TemplateUUID(section.Template.ID),
			Template:    section.Template,
			Content:     section.Content,
			Order:       section.Order,
		}
	}
	return out
}

func cloneLayout(layout *Layout) *Layout {
	if layout == nil {
		return nil
	}
	cloned := *layout
	cloned.Sections = cloneStoredSections(layout.Sections)
	return &cloned
}

func cloneStoredSections(src []StoredSection) []StoredSection {
	if src == nil {
		return []StoredSection{}
	}
	out := make([]StoredSection, len(src))
	for i, entry := range src {
		entry.Template = entry.Template.Clone()
		entry.Content = maps.Clone(entry.Content)
		out[i] = entry
	}
	return out
}
