// Package markdown parses template source files: YAML front matter for the
// catalog metadata and goldmark rendering for template descriptions.
package markdown
