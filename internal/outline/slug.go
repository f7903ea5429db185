package outline

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Slug derives a heading identifier from its text: lowercased, non-word
// characters stripped, whitespace runs collapsed to one hyphen, and leading
// and trailing hyphens trimmed. "API & Usage!" becomes "api-usage".
//
// Slug does not disambiguate: two headings with the same text get the same
// identifier.
func Slug(text string) string {
	s := strings.ToLower(text)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
