package prism

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalize applies Unicode normalization (NFKC) and locale-insensitive
// case folding. Indexed text, query terms, and tags all pass through here
// so lookups compare in a single canonical form.
func normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// isTokenRune reports whether r belongs inside a token.
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize splits text into normalized tokens. Segmentation runs UAX#29
// word boundaries first, then reduces each segment to its letter/digit
// runs, so any codepoint that is neither a letter nor a digit acts as a
// separator. Empty tokens are discarded.
func tokenize(s string) []string {
	toks := words.FromString(normalize(s))
	var tokens []string
	for toks.Next() {
		for _, run := range strings.FieldsFunc(toks.Value(), func(r rune) bool { return !isTokenRune(r) }) {
			tokens = append(tokens, run)
		}
	}
	return tokens
}

// normalizeTag canonicalizes a single tag literal: surrounding whitespace
// is trimmed, then the result is normalized like any other token.
func normalizeTag(s string) string {
	return normalize(strings.TrimSpace(s))
}

// splitTags breaks a comma-separated tag field value into normalized tag
// literals, dropping entries that are empty after trimming.
func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := normalizeTag(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
