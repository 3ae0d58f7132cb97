package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiOnly decomposes accented characters and drops everything outside ASCII,
// so "é" becomes "e" and "日" disappears.
var asciiOnly = transform.Chain(
	norm.NFD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Clean normalizes a note title into an index key and output filename:
// accents are folded to ASCII and spaces become dashes.
func Clean(title string) string {
	folded, _, err := transform.String(asciiOnly, title)
	if err != nil {
		// transform only fails on malformed chains; keep the raw title
		folded = title
	}
	return strings.ReplaceAll(folded, " ", "-")
}
