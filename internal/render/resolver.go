package render

import (
	"html"
	"sync"

	cmssections "github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
)

// Resolved is the final markup of one section.
type Resolved struct {
	ID     uuid.UUID
	Order  int
	Markup string
}

// Fallback renders the visible marker shown for a key that has neither a
// content override nor a template default.
func Fallback(key string) string {
	return "[" + key + "]"
}

type ResolverOption func(*Resolver)

// WithEscapeHTML escapes substituted values before they are written into the
// markup. Literal template text is never escaped.
func WithEscapeHTML(enabled bool) ResolverOption {
	return func(r *Resolver) {
		r.escape = enabled
	}
}

// Resolver substitutes section content into template markup. Resolution is
// pure: the same section always yields the same output.
type Resolver struct {
	escape bool

	mu    sync.RWMutex
	cache map[string]Markup
}

// NewResolver constructs a resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{cache: map[string]Markup{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve returns the section markup with every placeholder replaced by, in
// order: the content override (an explicit empty string counts), the template
// default, or the bracketed fallback.
func (r *Resolver) Resolve(section cmssections.Section) string {
	parsed := r.parse(section.Template.Markup)
	return parsed.Execute(func(key string) string {
		value, _ := lookup(section, key)
		if r.escape {
			return html.EscapeString(value)
		}
		return value
	})
}

// ResolvePage resolves every section of the snapshot in order.
func (r *Resolver) ResolvePage(snapshot cmssections.Snapshot) []Resolved {
	list := snapshot.Sections()
	out := make([]Resolved, len(list))
	for i, section := range list {
		out[i] = Resolved{
			ID:     section.ID,
			Order:  section.Order,
			Markup: r.Resolve(section),
		}
	}
	return out
}

// Keys lists the placeholder keys referenced by the section's template.
func (r *Resolver) Keys(section cmssections.Section) []string {
	return r.parse(section.Template.Markup).Keys()
}

// Unresolved lists the keys that would render as the bracketed fallback.
func (r *Resolver) Unresolved(section cmssections.Section) []string {
	missing := []string{}
	for _, key := range r.Keys(section) {
		if _, ok := lookup(section, key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func (r *Resolver) parse(markup string) Markup {
	r.mu.RLock()
	parsed, ok := r.cache[markup]
	r.mu.RUnlock()
	if ok {
		return parsed
	}
	parsed = Parse(markup)
	r.mu.Lock()
	r.cache[markup] = parsed
	r.mu.Unlock()
	return parsed
}

func lookup(section cmssections.Section, key string) (string, bool) {
	if value, ok := section.Content[key]; ok {
		return value, true
	}
	if value, ok := section.Template.Defaults[key]; ok {
		return value, true
	}
	return Fallback(key), false
}
