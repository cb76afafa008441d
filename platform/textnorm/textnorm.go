// Package textnorm provides accent- and case-insensitive text folding.
// Index builders call Fold once per catalog entry at build time; queries
// fold once per request. Nothing else should fold strings ad hoc.
// This is part of the platform layer and contains no business logic.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldChain = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold lowercases, strips diacritics, and collapses internal whitespace.
// "Perfil  Ómega" and "perfil omega" fold to the same key.
func Fold(s string) string {
	stripped, _, err := transform.String(foldChain, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the input
		// rather than producing an empty key.
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// ContainsFolded reports whether the folded haystack contains the folded needle.
func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
