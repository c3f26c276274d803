// Package humanize turns identifier-style field paths into readable words and
// capitalizes sentences for display.
package humanize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Path converts an identifier such as "firstName", "first_name" or
// "first-name" into "First name".
func Path(path string) string {
	var b strings.Builder
	b.Grow(len(path) + 4)

	prev := rune(0)
	for _, r := range path {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			b.WriteRune(' ')
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	words := strings.Fields(cases.Lower(language.Und).String(b.String()))
	return Capitalize(strings.Join(words, " "))
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	// Casers keep state between calls and are not shared across goroutines.
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// Sentence replaces every occurrence of path inside message with its
// humanized form and capitalizes the result. An empty path only capitalizes.
func Sentence(message, path string) string {
	if path != "" {
		message = strings.ReplaceAll(message, path, Path(path))
	}
	return Capitalize(message)
}
