// Package naming converts identifiers found in OpenAPI documents into
// labels for display and keys for structured output.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SplitWords splits an identifier into words at separators (underscore,
// hyphen, dot, slash, space) and at lower-to-upper case transitions. Runs of
// capitals stay together: "HTTPServer" yields "HTTP", "Server".
func SplitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == '/' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToLabel converts an identifier to a title-cased label.
// Example: "requestBodies" -> "Request Bodies"
// Example: "securitySchemes" -> "Security Schemes"
func ToLabel(s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// ToSnakeCase converts an identifier to snake_case.
// Example: "RequestBody" -> "request_body"
// Example: "PathItem" -> "path_item"
func ToSnakeCase(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		words[i] = cases.Lower(language.English).String(w)
	}
	return strings.Join(words, "_")
}
