package request

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// ParseMovementFilters extracts and validates movement filters from query parameters.
// Converts raw query string parameters into a validated model.MovementFilter.
//
// Validation rules:
//   - clientId/portfolioId/securityId: must be UUIDs when given
//   - dateFrom/dateTo: must be YYYY-MM-DD or RFC3339, with dateFrom <= dateTo
//
// All parameters are optional. Returns an error if any parameter fails validation.
func ParseMovementFilters(clientParam, portfolioParam, securityParam, dateFromParam, dateToParam string) (*model.MovementFilter, error) {
	filters := &model.MovementFilter{}

	for _, p := range []struct {
		name  string
		value string
		dst   *string
	}{
		{"clientId", clientParam, &filters.ClientID},
		{"portfolioId", portfolioParam, &filters.PortfolioID},
		{"securityId", securityParam, &filters.SecurityID},
	} {
		if p.value == "" {
			continue
		}
		if _, err := uuid.Parse(p.value); err != nil {
			return nil, fmt.Errorf("invalid %s: must be a UUID", p.name)
		}
		*p.dst = p.value
	}

	if dateFromParam != "" {
		t, err := parseFilterTime(dateFromParam)
		if err != nil {
			return nil, fmt.Errorf("invalid dateFrom: %w", err)
		}
		filters.DateFrom = &t
	}

	if dateToParam != "" {
		t, err := parseFilterTime(dateToParam)
		if err != nil {
			return nil, fmt.Errorf("invalid dateTo: %w", err)
		}
		filters.DateTo = &t
	}

	if filters.DateFrom != nil && filters.DateTo != nil && filters.DateFrom.After(*filters.DateTo) {
		return nil, fmt.Errorf("invalid date range: dateFrom must not be after dateTo")
	}

	return filters, nil
}

// ParseOptionalDate parses an optional date query parameter. An empty value yields nil.
func ParseOptionalDate(param string) (*time.Time, error) {
	if param == "" {
		return nil, nil
	}
	t, err := parseFilterTime(param)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseFilterTime parses date strings for filter parameters.
// Accepts YYYY-MM-DD, RFC3339, and RFC3339 with milliseconds formats.
func parseFilterTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC().Truncate(24 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", str)
}
