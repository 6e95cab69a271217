package request

import (
	"testing"
)

func TestParseMovementFilters(t *testing.T) {
	const id = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("no parameters", func(t *testing.T) {
		filters, err := ParseMovementFilters("", "", "", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if filters.ClientID != "" || filters.DateFrom != nil || filters.DateTo != nil {
			t.Errorf("Expected empty filters, got %+v", filters)
		}
	})

	t.Run("ids and dates", func(t *testing.T) {
		filters, err := ParseMovementFilters(id, id, id, "2024-01-01", "2024-12-31")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if filters.ClientID != id || filters.PortfolioID != id || filters.SecurityID != id {
			t.Errorf("Expected ids to be set, got %+v", filters)
		}
		if filters.DateFrom.Format("2006-01-02") != "2024-01-01" {
			t.Errorf("Expected dateFrom 2024-01-01, got %v", filters.DateFrom)
		}
		if filters.DateTo.Format("2006-01-02") != "2024-12-31" {
			t.Errorf("Expected dateTo 2024-12-31, got %v", filters.DateTo)
		}
	})

	t.Run("RFC3339 date", func(t *testing.T) {
		filters, err := ParseMovementFilters("", "", "", "2024-03-15T10:30:00Z", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if filters.DateFrom.Format("2006-01-02") != "2024-03-15" {
			t.Errorf("Expected dateFrom 2024-03-15, got %v", filters.DateFrom)
		}
	})

	t.Run("invalid client id", func(t *testing.T) {
		if _, err := ParseMovementFilters("abc", "", "", "", ""); err == nil {
			t.Error("Expected error for invalid clientId")
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if _, err := ParseMovementFilters("", "", "", "01/02/2024", ""); err == nil {
			t.Error("Expected error for invalid dateFrom")
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		if _, err := ParseMovementFilters("", "", "", "2024-12-31", "2024-01-01"); err == nil {
			t.Error("Expected error for inverted date range")
		}
	})
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	if err != nil || d != nil {
		t.Errorf("Expected nil date without error, got %v, %v", d, err)
	}

	d, err = ParseOptionalDate("2024-02-01")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.Format("2006-01-02") != "2024-02-01" {
		t.Errorf("Expected 2024-02-01, got %v", d)
	}
}
