// Package pricing turns loosely formatted price exports into a NameKey -> price
// table and values holdings against it.
//
// Nothing in this package touches storage; every function is pure and safe for
// concurrent use once a Table has been built.
package pricing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes s and drops combining marks ("Dólar" -> "Dolar").
// transform.Chain keeps state, so a fresh chain is built per call.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeName produces the NameKey of a raw security label: lower-cased,
// accents stripped, and everything that is not a letter or digit removed.
// Labels differing only by case, accents, whitespace or punctuation share a key.
func NormalizeName(raw string) string {
	s := stripAccents(raw)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// FoldName is the case- and accent-insensitive form of a security name used
// for exact resolution. Unlike NormalizeName it keeps punctuation and collapses
// whitespace, so "YPF S.A." and "YPFSA" remain different securities.
func FoldName(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(stripAccents(raw))), " ")
}

// ToggleSuffixD switches a key between its local and foreign share class
// forms (CEDEAR style): "ypfd" -> "ypf", "ypf" -> "ypfd".
func ToggleSuffixD(key string) string {
	if key == "" {
		return ""
	}
	if len(key) > 1 && strings.HasSuffix(key, "d") {
		return strings.TrimSuffix(key, "d")
	}
	return key + "d"
}
