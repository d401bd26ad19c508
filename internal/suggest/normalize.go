package suggest

import (
	"strings"
	"unicode"
)

// NormalizeSegment normalizes a path segment for fuzzy matching.
// The normalization pipeline:
// 1. Tokenize CamelCase.
// 2. Case-fold to lower.
// 3. Strip word separators (_, -, spaces).
func NormalizeSegment(s string) string {
	tokens := tokenizeCamelCase(s)

	joined := strings.ToLower(strings.Join(tokens, ""))

	return stripSeparators(joined)
}

// NormalizePath normalizes each segment of p and rejoins them with sep.
func NormalizePath(p, sep string) string {
	segments := strings.Split(p, sep)
	for i, seg := range segments {
		segments[i] = NormalizeSegment(seg)
	}

	return strings.Join(segments, sep)
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "postCode" -> ["post", "Code"]
//   - "HTTPStatus" -> ["HTTP", "Status"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && startsToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports a lower-to-upper transition or the end of an acronym.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
