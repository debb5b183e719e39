package templates

import (
	"fmt"
	"slices"
	"strings"
)

// AllCategories disables the category filter in Search.
const AllCategories = "all"

// Catalog is the immutable set of templates a session can instantiate.
// It is safe for concurrent readers.
type Catalog struct {
	items []Template
	index map[string]int
}

// NewCatalog validates list and captures a copy of it. Template ids must be
// non-empty and unique.
func NewCatalog(list []Template) (*Catalog, error) {
	c := &Catalog{
		items: make([]Template, 0, len(list)),
		index: make(map[string]int, len(list)),
	}
	for _, tpl := range list {
		id := strings.TrimSpace(tpl.ID)
		if id == "" {
			return nil, fmt.Errorf("%w (name %q)", ErrTemplateIDRequired, tpl.Name)
		}
		if _, exists := c.index[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplate, id)
		}
		clone := tpl.Clone()
		clone.ID = id
		c.index[id] = len(c.items)
		c.items = append(c.items, clone)
	}
	return c, nil
}

// MustCatalog is NewCatalog for static template lists.
func MustCatalog(list []Template) *Catalog {
	c, err := NewCatalog(list)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns a copy of the template registered under id.
func (c *Catalog) Get(id string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	idx, ok := c.index[strings.TrimSpace(id)]
	if !ok {
		return Template{}, false
	}
	return c.items[idx].Clone(), true
}

// List returns every template in catalog order.
func (c *Catalog) List() []Template {
	if c == nil {
		return nil
	}
	return cloneAll(c.items)
}

// Len reports the number of templates.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Categories returns the distinct non-empty categories, sorted.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, tpl := range c.items {
		category := strings.TrimSpace(tpl.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	slices.Sort(out)
	return out
}

// Search filters the catalog. See the package level Search.
func (c *Catalog) Search(query, category string) []Template {
	if c == nil {
		return nil
	}
	return Search(c.items, query, category)
}

func cloneAll(list []Template) []Template {
	out := make([]Template, len(list))
	for i, tpl := range list {
		out[i] = tpl.Clone()
	}
	return out
}
