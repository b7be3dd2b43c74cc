package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses every run of whitespace into a single space and trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeName lowercases a name and strips all whitespace and honorifics so that
// "Hon. (Dr.) John  Mbadi" and "john mbadi" compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	for _, prefix := range honorifics {
		name = strings.ReplaceAll(name, prefix, "")
	}
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

var honorifics = []string{"hon.", "sen.", "dr.", "(", ")", ","}

// Preview returns at most n runes of text, with an ellipsis if it was cut.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}
