package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks and the UTF-8 replacement character,
// so headers damaged in transit ("Endereo") and intact ones ("Endereço")
// converge on the same form.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		out = s
	}
	return strings.ReplaceAll(out, "�", "")
}

// Fold lowercases and strips accents, for loose Portuguese text matching.
func Fold(s string) string {
	return strings.ToLower(StripAccents(s))
}
