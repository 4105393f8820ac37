// Package casing converts identifiers and display strings between naming
// conventions.
package casing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s at separators (underscore, dash, dot, blank) and at case
// boundaries. Acronyms stay together ("HTTPServer" -> "HTTP", "Server").
func Words(s string) []string {
	var words []string
	var cur []rune
	runes := []rune(s)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) && len(cur) > 0 {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !prevUpper || nextLower {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToSnakeCase converts any convention to snake_case.
// Handles acronyms properly (e.g., "HTTPSConnection" -> "https_connection")
func ToSnakeCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// ToPascalCase converts any convention to PascalCase (upper camel case)
func ToPascalCase(s string) string {
	// Casers carry state; one per call keeps this safe across goroutines.
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ToCamelCase converts any convention to camelCase (lower camel case)
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	title := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// JoinCamel joins the words of s, title-casing every word after the first
// and leaving the first untouched ("my value" -> "myValue", "My value" -> "MyValue").
func JoinCamel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	title := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// UpperASCII folds a-z to A-Z and leaves every other byte alone, matching
// the C library toupper in the default locale.
func UpperASCII(s string) string {
	return mapASCII(s, 'a', 'z', 'A'-'a')
}

// LowerASCII folds A-Z to a-z and leaves every other byte alone.
func LowerASCII(s string) string {
	return mapASCII(s, 'A', 'Z', 'a'-'A')
}

func mapASCII(s string, lo, hi byte, delta int) string {
	b := []byte(s)
	for i, c := range b {
		if c >= lo && c <= hi {
			b[i] = byte(int(c) + delta)
		}
	}
	return string(b)
}
