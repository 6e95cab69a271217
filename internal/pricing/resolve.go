package pricing

import "strings"

// minSubstringKey is the shortest key the substring strategy will consider,
// on either side of the comparison.
const minSubstringKey = 3

// Resolver is one strategy for finding a price for a security display name.
type Resolver func(t *Table, name string) (float64, bool)

// DefaultChain is the resolution order used by Table.Resolve. The first
// strategy that answers wins.
var DefaultChain = []Resolver{
	ResolveExact,
	ResolveSuffixToggle,
	ResolveSubstring,
	ResolveTokens,
}

// Resolve maps a display name to a price using DefaultChain.
func (t *Table) Resolve(name string) (float64, bool) {
	return t.ResolveWith(DefaultChain, name)
}

// ResolveWith tries each resolver in order.
func (t *Table) ResolveWith(chain []Resolver, name string) (float64, bool) {
	if t.Len() == 0 {
		return 0, false
	}
	for _, r := range chain {
		if p, ok := r(t, name); ok {
			return p, true
		}
	}
	return 0, false
}

// ResolveExact looks up the NameKey of name.
func ResolveExact(t *Table, name string) (float64, bool) {
	return t.Lookup(NormalizeName(name))
}

// ResolveSuffixToggle looks up the NameKey with its trailing "d" added or removed.
func ResolveSuffixToggle(t *Table, name string) (float64, bool) {
	return t.Lookup(ToggleSuffixD(NormalizeName(name)))
}

// ResolveSubstring matches the first registered key, longest first, that
// contains the NameKey or is contained in it. Keys shorter than three
// characters never take part.
func ResolveSubstring(t *Table, name string) (float64, bool) {
	key := NormalizeName(name)
	if len(key) < minSubstringKey {
		return 0, false
	}
	for _, k := range t.byLength {
		if len(k) < minSubstringKey {
			break
		}
		if strings.Contains(k, key) || strings.Contains(key, k) {
			return t.Lookup(k)
		}
	}
	return 0, false
}

// ResolveTokens splits name on whitespace and tries each token, then its
// suffix toggle, as an exact key.
func ResolveTokens(t *Table, name string) (float64, bool) {
	for _, tok := range strings.Fields(name) {
		key := NormalizeName(tok)
		if key == "" {
			continue
		}
		if p, ok := t.Lookup(key); ok {
			return p, true
		}
		if p, ok := t.Lookup(ToggleSuffixD(key)); ok {
			return p, true
		}
	}
	return 0, false
}
