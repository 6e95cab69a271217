package pricing

import (
	"sort"
	"strings"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/apperrors"
)

// Layout hints for the most common broker export: ticker in column 1,
// last price in column 5.
const (
	knownTickerCol = 1
	knownPriceCol  = 5

	forwardScan  = 6
	backwardScan = 3

	minTickerLen = 2
	maxTickerLen = 6
)

// stopWords are ticker-shaped cells that are headers, currency markers or
// footers rather than instruments.
var stopWords = map[string]bool{
	"total": true, "subtotal": true, "fondo": true, "fondos": true,
	"dolar": true, "dolares": true, "peso": true, "pesos": true,
	"ars": true, "usd": true, "eur": true, "mep": true, "ccl": true, "cable": true,
	"ticker": true, "symbol": true, "simbolo": true, "especie": true,
	"precio": true, "price": true, "ultimo": true, "cierre": true, "close": true,
	"fecha": true, "date": true, "nombre": true, "name": true, "tipo": true,
	"moneda": true, "monto": true, "var": true, "qty": true, "cant": true,
}

// Entry is one registered price.
type Entry struct {
	Price  float64
	Strong bool   // registered from a ticker cell rather than derived from the description
	Ticker string // ticker cell of the row the price came from
	Label  string // description cell, if any
}

// Table maps NameKeys to prices. It is immutable once built.
type Table struct {
	entries map[string]Entry
	tickers []string
	// byLength orders keys longest first, ties lexicographic.
	byLength []string
}

// NewTable builds a table from already registered entries, e.g. ones loaded
// from storage.
func NewTable(entries map[string]Entry) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	seen := make(map[string]bool)
	for k, e := range entries {
		if k == "" {
			continue
		}
		t.entries[k] = e
		if e.Strong && e.Ticker != "" && !seen[e.Ticker] {
			seen[e.Ticker] = true
			t.tickers = append(t.tickers, e.Ticker)
		}
	}
	sort.Strings(t.tickers)
	t.index()
	return t
}

func (t *Table) index() {
	t.byLength = make([]string, 0, len(t.entries))
	for k := range t.entries {
		t.byLength = append(t.byLength, k)
	}
	sort.Slice(t.byLength, func(i, j int) bool {
		a, b := t.byLength[i], t.byLength[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

// register adds key unless it would let a derived key overwrite a ticker key.
// Ticker keys overwrite anything; derived keys keep the first registration.
func (t *Table) register(key string, e Entry) {
	if key == "" {
		return
	}
	if _, ok := t.entries[key]; ok && !e.Strong {
		return
	}
	t.entries[key] = e
}

// Len returns the number of registered keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Lookup returns the price registered for key exactly.
func (t *Table) Lookup(key string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	e, ok := t.entries[key]
	return e.Price, ok
}

// Entries returns a copy of every registered key.
func (t *Table) Entries() map[string]Entry {
	out := make(map[string]Entry, t.Len())
	if t == nil {
		return out
	}
	for k, e := range t.entries {
		out[k] = e
	}
	return out
}

// Tickers returns the distinct ticker cells that produced a price, sorted.
func (t *Table) Tickers() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.tickers...)
}

// Prices flattens the table to NameKey -> price.
func (t *Table) Prices() map[string]float64 {
	out := make(map[string]float64, t.Len())
	if t == nil {
		return out
	}
	for k, e := range t.entries {
		out[k] = e.Price
	}
	return out
}

// ParsePriceTable extracts (ticker, price) pairs from a delimited text export
// with no fixed schema. Header rows, footer rows and rows without a usable
// price are skipped. A file that yields no pair returns apperrors.ErrNoPricePairs.
func ParsePriceTable(raw string) (*Table, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	delim := DetectDelimiter(raw)

	t := &Table{entries: make(map[string]Entry)}
	seen := make(map[string]bool)

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitRow(line, delim)
		if isFooterRow(fields) {
			continue
		}
		tickerIdx, price, ok := knownLayout(fields)
		if !ok {
			if tickerIdx = findTicker(fields); tickerIdx < 0 {
				continue
			}
			if price, ok = findPrice(fields, tickerIdx); !ok {
				continue
			}
		}

		ticker := fields[tickerIdx]
		desc := description(fields, tickerIdx)
		t.registerRow(ticker, desc, price)
		if !seen[ticker] {
			seen[ticker] = true
			t.tickers = append(t.tickers, ticker)
		}
	}

	if len(t.entries) == 0 {
		return nil, apperrors.ErrNoPricePairs
	}
	sort.Strings(t.tickers)
	t.index()
	return t, nil
}

func (t *Table) registerRow(ticker, desc string, price float64) {
	tickerKey := NormalizeName(ticker)
	t.register(tickerKey, Entry{Price: price, Strong: true, Ticker: ticker, Label: desc})

	weak := Entry{Price: price, Ticker: ticker, Label: desc}
	if desc != "" {
		t.register(NormalizeName(desc), weak)
		t.register(NormalizeName(strings.Fields(desc)[0]), weak)
		t.register(NormalizeName(ticker+desc), weak)
	}
	t.register(ToggleSuffixD(tickerKey), weak)
}

// isFooterRow reports rows whose first non-empty cell starts a total/subtotal line.
func isFooterRow(fields []string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		k := NormalizeName(f)
		return strings.HasPrefix(k, "total") || strings.HasPrefix(k, "subtotal")
	}
	return false
}

func isTickerLike(cell string) bool {
	if len(cell) < minTickerLen || len(cell) > maxTickerLen {
		return false
	}
	letters := 0
	for _, r := range cell {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return letters > 0 && !stopWords[strings.ToLower(cell)]
}

// knownLayout matches rows of the common export shape: a ticker in column 1
// and a positive price in column 5. It wins over the generic scan so that a
// ticker-shaped category cell in column 0 ("Bonos", "ON") is not taken for
// the instrument.
func knownLayout(fields []string) (int, float64, bool) {
	if len(fields) <= knownPriceCol || !isTickerLike(fields[knownTickerCol]) {
		return -1, 0, false
	}
	v, ok := ParseLocaleNumber(fields[knownPriceCol])
	if !ok || v <= 0 {
		return -1, 0, false
	}
	return knownTickerCol, v, true
}

func findTicker(fields []string) int {
	for i, f := range fields {
		if isTickerLike(f) {
			return i
		}
	}
	return -1
}

// findPrice looks for a positive numeric cell forward from the ticker, then
// backward, then anywhere in the row.
func findPrice(fields []string, tickerIdx int) (float64, bool) {
	try := func(i int) (float64, bool) {
		if i < 0 || i >= len(fields) || i == tickerIdx {
			return 0, false
		}
		v, ok := ParseLocaleNumber(fields[i])
		if !ok || v <= 0 {
			return 0, false
		}
		return v, true
	}

	for i := tickerIdx + 1; i <= tickerIdx+forwardScan; i++ {
		if v, ok := try(i); ok {
			return v, true
		}
	}
	for i := tickerIdx - 1; i >= tickerIdx-backwardScan; i-- {
		if v, ok := try(i); ok {
			return v, true
		}
	}
	for i := range fields {
		if v, ok := try(i); ok {
			return v, true
		}
	}
	return 0, false
}

// description returns the cell right after the ticker when it is text.
func description(fields []string, tickerIdx int) string {
	i := tickerIdx + 1
	if i >= len(fields) || fields[i] == "" {
		return ""
	}
	if _, ok := ParseLocaleNumber(fields[i]); ok {
		return ""
	}
	if NormalizeName(fields[i]) == "" {
		return ""
	}
	return fields[i]
}
