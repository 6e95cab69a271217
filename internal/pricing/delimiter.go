package pricing

import "strings"

// sniffLines is how many non-blank lines DetectDelimiter inspects.
const sniffLines = 8

// DetectDelimiter guesses the field delimiter of a tabular export by counting
// commas, semicolons and tabs over its first non-blank lines. Semicolon wins
// if it strictly outnumbers both others, then tab; comma is the default.
func DetectDelimiter(raw string) rune {
	var commas, semicolons, tabs, seen int
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		commas += strings.Count(line, ",")
		semicolons += strings.Count(line, ";")
		tabs += strings.Count(line, "\t")
		seen++
		if seen == sniffLines {
			break
		}
	}

	switch {
	case semicolons > commas && semicolons > tabs:
		return ';'
	case tabs > commas && tabs > semicolons:
		return '\t'
	default:
		return ','
	}
}

// SplitRow splits one line on delim. Double quotes group a field so that
// delimiters inside it do not split, a doubled quote inside a quoted field is
// a literal quote, and every resulting field is trimmed.
func SplitRow(line string, delim rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case inQuotes && r == '"':
			if i+1 < len(rs) && rs[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = false
			}
		case inQuotes:
			field.WriteRune(r)
		case r == '"':
			inQuotes = true
		case r == delim:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(field.String()))
}
