package render

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// SegmentKind distinguishes literal text from placeholder slots.
type SegmentKind uint8

const (
	SegmentLiteral SegmentKind = iota
	SegmentPlaceholder
)

// Segment is one piece of tokenised markup. For placeholders Value holds the
// trimmed key; for literals it holds the raw text.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Markup is template markup split into literal and placeholder segments.
type Markup struct {
	segments []Segment
}

// Parse tokenises markup once so resolution becomes a keyed lookup instead of
// a textual replace. An unterminated "{{" and an empty "{{}}" are kept as
// literal text. A run of more than two opening braces belongs to the
// placeholder it opens, together with as many closing braces, so
// "{{{title}}}" is the single placeholder title.
func Parse(markup string) Markup {
	var (
		segments []Segment
		literal  strings.Builder
		rest     = markup
	)

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		segments = append(segments, Segment{Kind: SegmentLiteral, Value: literal.String()})
		literal.Reset()
	}

	for rest != "" {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			literal.WriteString(rest)
			break
		}
		literal.WriteString(rest[:start])
		rest = rest[start:]

		open := braceRun(rest, '{')
		end := strings.Index(rest[open:], closeDelim)
		if end < 0 {
			literal.WriteString(rest)
			break
		}
		raw := rest[open : open+end]

		// A nested opener means the first run is plain text; resume scanning
		// from the inner opener.
		if inner := strings.LastIndex(raw, openDelim); inner >= 0 {
			literal.WriteString(rest[:open+inner])
			rest = rest[open+inner:]
			continue
		}

		closing := open + end + min(braceRun(rest[open+end:], '}'), open)
		token := rest[:closing]

		key := strings.TrimSpace(raw)
		if key == "" {
			literal.WriteString(token)
			rest = rest[len(token):]
			continue
		}

		flush()
		segments = append(segments, Segment{Kind: SegmentPlaceholder, Value: key})
		rest = rest[len(token):]
	}
	flush()

	return Markup{segments: segments}
}

// braceRun counts the leading brace characters of s.
func braceRun(s string, brace byte) int {
	n := 0
	for n < len(s) && s[n] == brace {
		n++
	}
	return n
}

// Segments returns a copy of the parsed segments.
func (m Markup) Segments() []Segment {
	return append([]Segment(nil), m.segments...)
}

// Keys returns the distinct placeholder keys in first-seen order.
func (m Markup) Keys() []string {
	seen := map[string]struct{}{}
	keys := []string{}
	for _, segment := range m.segments {
		if segment.Kind != SegmentPlaceholder {
			continue
		}
		if _, ok := seen[segment.Value]; ok {
			continue
		}
		seen[segment.Value] = struct{}{}
		keys = append(keys, segment.Value)
	}
	return keys
}

// Execute concatenates the segments, asking lookup for every placeholder.
func (m Markup) Execute(lookup func(key string) string) string {
	var out strings.Builder
	for _, segment := range m.segments {
		switch segment.Kind {
		case SegmentPlaceholder:
			out.WriteString(lookup(segment.Value))
		default:
			out.WriteString(segment.Value)
		}
	}
	return out.String()
}
