package validation

import (
	"testing"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
)

func TestValidateCreateClient(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := request.CreateClientRequest{Name: "Ana", Email: "ana@example.com", FeePercent: 1.5}
		if err := ValidateCreateClient(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("invalid fields", func(t *testing.T) {
		req := request.CreateClientRequest{Name: " ", Email: "nope", FeePercent: 120}
		fields := fieldsOf(t, ValidateCreateClient(req))
		for _, f := range []string{"name", "email", "feePercent"} {
			if _, ok := fields[f]; !ok {
				t.Errorf("Expected error for %s, got %v", f, fields)
			}
		}
	})
}

func TestValidateCreatePortfolio(t *testing.T) {
	if err := ValidateCreatePortfolio(request.CreatePortfolioRequest{ClientID: testUUID, Name: "Retiro"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	fields := fieldsOf(t, ValidateCreatePortfolio(request.CreatePortfolioRequest{}))
	if _, ok := fields["clientId"]; !ok {
		t.Errorf("Expected clientId error, got %v", fields)
	}
	if _, ok := fields["name"]; !ok {
		t.Errorf("Expected name error, got %v", fields)
	}
}
