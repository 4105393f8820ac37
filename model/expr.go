package model

import (
	"strings"
)

// Token is a piece of a value expression: either a word run (letters,
// digits, underscores and dots) that may name a sibling entry, or any other
// text kept verbatim.
type Token struct {
	Text string
	Word bool
}

// Expr is a value expression parsed once at build time and resolved against
// sibling entries at emission time.
type Expr struct {
	Tokens []Token
}

// ParseExpr splits s into word runs and verbatim text.
func ParseExpr(s string) Expr {
	var e Expr
	start := 0
	inWord := false
	for i := 0; i <= len(s); i++ {
		w := i < len(s) && isWordByte(s[i])
		if i == len(s) || w != inWord {
			if i > start {
				e.Tokens = append(e.Tokens, Token{Text: s[start:i], Word: inWord})
			}
			start = i
			inWord = w
		}
	}
	return e
}

// Literal wraps text that never refers to siblings.
func Literal(s string) Expr {
	if s == "" {
		return Expr{}
	}
	return Expr{Tokens: []Token{{Text: s}}}
}

// IsEmpty reports whether the expression has no text.
func (e Expr) IsEmpty() bool { return len(e.Tokens) == 0 }

// String returns the expression as written.
func (e Expr) String() string {
	var b strings.Builder
	for _, t := range e.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Resolve renders the expression, replacing every word that names a sibling
// with that sibling's member in the requested form. Names may contain blanks
// and dots, so the longest sibling name starting at a word wins; failing
// that a dotted run is resolved segment by segment.
func (e Expr) Resolve(lookup func(string) *Entry, f Form) string {
	var b strings.Builder
	for i := 0; i < len(e.Tokens); i++ {
		t := e.Tokens[i]
		if !t.Word || !startsIdent(t.Text) {
			b.WriteString(t.Text)
			continue
		}
		if ref, end := e.longestName(i, lookup); ref != nil {
			b.WriteString(ref.Member(f))
			i = end
			continue
		}
		parts := strings.Split(t.Text, ".")
		for j, part := range parts {
			if j > 0 {
				b.WriteByte('.')
			}
			if ref := lookup(part); ref != nil {
				b.WriteString(ref.Member(f))
			} else {
				b.WriteString(part)
			}
		}
	}
	return b.String()
}

// longestName finds the longest sibling name spelled by the word at start
// and the blank-separated words after it. end is the index of its last token.
func (e Expr) longestName(start int, lookup func(string) *Entry) (ref *Entry, end int) {
	name := e.Tokens[start].Text
	if r := lookup(name); r != nil {
		ref, end = r, start
	}
	for i := start + 1; i+1 < len(e.Tokens); i += 2 {
		sep, next := e.Tokens[i], e.Tokens[i+1]
		if sep.Word || strings.Trim(sep.Text, " ") != "" || !next.Word {
			break
		}
		name += sep.Text + next.Text
		if r := lookup(name); r != nil {
			ref, end = r, i+1
		}
	}
	return ref, end
}

// PrefixWords prepends prefix to every identifier word in s. Numbers, and
// the member part of dotted words, are left alone.
func PrefixWords(prefix, s string) string {
	if prefix == "" {
		return s
	}
	var b strings.Builder
	for _, t := range ParseExpr(s).Tokens {
		if t.Word && startsIdent(t.Text) {
			b.WriteString(prefix)
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func startsIdent(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
