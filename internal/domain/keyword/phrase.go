// Package keyword holds search phrases and their enrichment metrics.
package keyword

import (
	"strings"
	"unicode/utf8"
)

// MaxPhraseLength is the maximum phrase length in characters.
const MaxPhraseLength = 100

// Normalize lowercases, trims and collapses whitespace runs to a single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// WordCount returns the number of whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Length returns the phrase length in characters.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
