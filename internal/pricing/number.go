package pricing

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// currencyMarkers are removed before a cell is parsed. Longer markers first.
var currencyMarkers = []string{"us$", "u$s", "usd", "ars", "eur", "$", "€"}

// ParseLocaleNumber parses numbers written with either decimal convention.
//
//	"1.286,11" -> 1286.11    "1,286.11" -> 1286.11
//	"12,5"     -> 12.5       "$ 1.234"  -> 1234
//
// When both separators appear, the first one is the thousands separator.
// A lone comma is decimal. A separator repeated more than once is a
// thousands separator. In an amount carrying a currency marker, a lone dot
// followed by exactly three digits and a non-zero integer part of at most
// three digits is a thousands separator ("$ 1.234"); without a marker the
// dot is decimal ("98.125").
// Unparseable input returns (NaN, false); callers must treat it as "no price",
// never as zero.
func ParseLocaleNumber(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	hadMarker := false
	for _, marker := range currencyMarkers {
		if strings.Contains(s, marker) {
			hadMarker = true
			s = strings.ReplaceAll(s, marker, "")
		}
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\u00a0' || r == '\u202f' {
			return -1
		}
		return r
	}, s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}

	if !isDecimalText(s) {
		return math.NaN(), false
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.Index(s, ".") < strings.Index(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	case dots == 1 && hadMarker && isThousandsDot(s):
		s = strings.Replace(s, ".", "", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return math.NaN(), false
	}
	if negative {
		v = -v
	}
	return v, true
}

// isDecimalText reports whether s holds only digits and separators, with at least one digit.
func isDecimalText(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func isThousandsDot(s string) bool {
	i := strings.IndexByte(s, '.')
	intPart, frac := s[:i], s[i+1:]
	return len(frac) == 3 &&
		len(intPart) > 0 && len(intPart) <= 3 &&
		strings.TrimLeft(intPart, "0") != ""
}
