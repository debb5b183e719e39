package templates

import "strings"

// Search returns the templates whose name or description contains query,
// ignoring case, and whose category equals category. Passing AllCategories
// skips the category check; an empty query matches everything. The result
// keeps the input order.
func Search(list []Template, query, category string) []Template {
	needle := strings.ToLower(query)
	out := []Template{}
	for _, tpl := range list {
		if category != AllCategories && tpl.Category != category {
			continue
		}
		if needle != "" && !matches(tpl, needle) {
			continue
		}
		out = append(out, tpl.Clone())
	}
	return out
}

func matches(tpl Template, needle string) bool {
	return strings.Contains(strings.ToLower(tpl.Name), needle) ||
		strings.Contains(strings.ToLower(tpl.Description), needle)
}
