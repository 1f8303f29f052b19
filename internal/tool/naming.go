package tool

import (
	"strings"
	"unicode"
)

// Naming transforms between the identifier's casing variants. All of them
// are pure functions of their input: the same string always produces the
// same result, and every variant can be derived from any other.

// TypeName converts a string to PascalCase, e.g. "data-export" → "DataExport".
func TypeName(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = capitalize(strings.ToLower(word))
	}
	return strings.Join(words, "")
}

// MemberName converts a string to camelCase, e.g. "data-export" → "dataExport".
func MemberName(s string) string {
	pascal := TypeName(s)
	if len(pascal) == 0 {
		return pascal
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// TableName converts a string to snake_case, e.g. "data-export" → "data_export".
func TableName(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// KebabCase converts a string to kebab-case, e.g. "DataExport" → "data-export".
func KebabCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "-")
}

// capitalize returns the string with the first letter uppercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// splitWords splits a string into words (handles camelCase, PascalCase,
// snake_case, and kebab-case inputs).
func splitWords(s string) []string {
	// Replace common separators with space.
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	// Insert space before uppercase letters in camelCase/PascalCase.
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(s[i-1])
			if !unicode.IsSpace(prev) && !unicode.IsUpper(prev) {
				result.WriteRune(' ')
			}
		}
		result.WriteRune(r)
	}

	return strings.Fields(result.String())
}
