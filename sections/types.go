package sections

import (
	"maps"
	"slices"
	"sort"

	"github.com/google/uuid"
)

// Template is a reusable section definition supplied by the catalog.
type Template struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Category    string            `json:"category" yaml:"category"`
	Description string            `json:"description,omitempty" yaml:"description"`
	Markup      string            `json:"markup" yaml:"markup"`
	Elements    []string          `json:"elements,omitempty" yaml:"elements"`
	Defaults    map[string]string `json:"defaults,omitempty" yaml:"defaults"`
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	out.Elements = slices.Clone(t.Elements)
	out.Defaults = maps.Clone(t.Defaults)
	return out
}

// Section is one instantiated block of page content derived from a template.
// Template holds the value captured when the section was created, so later
// catalog changes never alter existing sections.
type Section struct {
	ID       uuid.UUID         `json:"id"`
	Template Template          `json:"template"`
	Content  map[string]string `json:"content"`
	Order    int               `json:"order"`
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Template = s.Template.Clone()
	out.Content = maps.Clone(s.Content)
	if out.Content == nil {
		out.Content = map[string]string{}
	}
	return out
}

// Snapshot is an immutable capture of the ordered section list.
type Snapshot struct {
	sections []Section
}

// NewSnapshot deep copies the supplied sections, sorted by order.
func NewSnapshot(list []Section) Snapshot {
	copied := make([]Section, len(list))
	for i, section := range list {
		copied[i] = section.Clone()
	}
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Order < copied[j].Order
	})
	return Snapshot{sections: copied}
}

// Sections returns a deep copy of the captured sections in order.
func (s Snapshot) Sections() []Section {
	out := make([]Section, len(s.sections))
	for i, section := range s.sections {
		out[i] = section.Clone()
	}
	return out
}

// Len reports how many sections the snapshot holds.
func (s Snapshot) Len() int {
	return len(s.sections)
}

// IDs returns the section identifiers in order.
func (s Snapshot) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.sections))
	for i, section := range s.sections {
		ids[i] = section.ID
	}
	return ids
}

// Find returns a copy of the section with the given id.
func (s Snapshot) Find(id uuid.UUID) (Section, bool) {
	for _, section := range s.sections {
		if section.ID == id {
			return section.Clone(), true
		}
	}
	return Section{}, false
}

// Equal reports whether both snapshots hold the same sections in the same order.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.sections) != len(other.sections) {
		return false
	}
	for i := range s.sections {
		if !sectionsEqual(s.sections[i], other.sections[i]) {
			return false
		}
	}
	return true
}

func sectionsEqual(a, b Section) bool {
	if a.ID != b.ID || a.Order != b.Order {
		return false
	}
	if !maps.Equal(a.Content, b.Content) {
		return false
	}
	return templatesEqual(a.Template, b.Template)
}

func templatesEqual(a, b Template) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.Category == b.Category &&
		a.Description == b.Description &&
		a.Markup == b.Markup &&
		slices.Equal(a.Elements, b.Elements) &&
		maps.Equal(a.Defaults, b.Defaults)
}
