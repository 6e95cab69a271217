package pricing

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeExport returns a price export as UTF-8. Spreadsheet exports that are
// not valid UTF-8 are read as Windows-1252, which is what desktop brokers
// write for "Descripción" and friends.
func DecodeExport(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
