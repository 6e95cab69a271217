package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error carries field-level validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// fieldErrors collects messages and turns into an *Error only when non-empty.
type fieldErrors map[string]string

func (f fieldErrors) err() error {
	if len(f) > 0 {
		return &Error{Fields: f}
	}
	return nil
}

func (f fieldErrors) uuid(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = field + " is required"
	} else if ValidateUUID(value) != nil {
		f[field] = field + " must be a valid UUID"
	}
}

func (f fieldErrors) date(field, value string, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			f[field] = field + " is required"
		}
		return
	}
	if _, err := ParseTime(value); err != nil {
		f[field] = err.Error()
	}
}

func (f fieldErrors) text(field, value string, required bool, maxLen int) {
	switch {
	case required && strings.TrimSpace(value) == "":
		f[field] = field + " is required"
	case len(value) > maxLen:
		f[field] = fmt.Sprintf("%s must be %d characters or less", field, maxLen)
	}
}
