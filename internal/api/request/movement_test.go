package request

import (
	"encoding/json"
	"testing"
)

func TestCreateMovementRequest_UnmarshalJSON(t *testing.T) {
	t.Run("camelCase", func(t *testing.T) {
		var req CreateMovementRequest
		body := `{"clientId":"c1","portfolioId":"p1","securityName":"YPF","type":"buy","date":"2024-01-01","quantity":100,"unitPrice":12.5}`
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if req.ClientID != "c1" || req.PortfolioID != "p1" || req.SecurityName != "YPF" {
			t.Errorf("Unexpected identity fields: %+v", req)
		}
		if req.Quantity != 100 {
			t.Errorf("Expected quantity 100, got %v", req.Quantity)
		}
		if req.UnitPrice == nil || *req.UnitPrice != 12.5 {
			t.Errorf("Expected unit price 12.5, got %v", req.UnitPrice)
		}
	})

	t.Run("snake_case and Spanish aliases", func(t *testing.T) {
		var req CreateMovementRequest
		body := `{"cliente_id":"c1","cartera_id":"p1","tipo_especie":"Dólar MEP","tipo":"Venta","fecha":"2024-02-01","cantidad":"1.234,5","precio":null,"nota":"rescate"}`
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if req.ClientID != "c1" {
			t.Errorf("Expected clientId c1, got %q", req.ClientID)
		}
		if req.PortfolioID != "p1" {
			t.Errorf("Expected portfolioId p1, got %q", req.PortfolioID)
		}
		if req.SecurityName != "Dólar MEP" {
			t.Errorf("Expected security name from tipo_especie, got %q", req.SecurityName)
		}
		if req.Type != "sell" {
			t.Errorf("Expected venta to map to sell, got %q", req.Type)
		}
		if req.Date != "2024-02-01" {
			t.Errorf("Expected date from fecha, got %q", req.Date)
		}
		if req.Quantity != 1234.5 {
			t.Errorf("Expected locale quantity 1234.5, got %v", req.Quantity)
		}
		if req.UnitPrice != nil {
			t.Errorf("Expected null price to stay nil, got %v", *req.UnitPrice)
		}
		if req.Note != "rescate" {
			t.Errorf("Expected note, got %q", req.Note)
		}
	})

	t.Run("nominal alias and compra", func(t *testing.T) {
		var req CreateMovementRequest
		if err := json.Unmarshal([]byte(`{"nominal":40,"type":"COMPRA"}`), &req); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if req.Quantity != 40 || req.Type != "buy" {
			t.Errorf("Expected 40 buy, got %v %q", req.Quantity, req.Type)
		}
	})

	t.Run("non numeric quantity", func(t *testing.T) {
		var req CreateMovementRequest
		if err := json.Unmarshal([]byte(`{"quantity":"many"}`), &req); err == nil {
			t.Error("Expected error for non numeric quantity")
		}
	})

	t.Run("not an object", func(t *testing.T) {
		var req CreateMovementRequest
		if err := json.Unmarshal([]byte(`[1,2]`), &req); err == nil {
			t.Error("Expected error for array body")
		}
	})
}

func TestUpdateMovementRequest_UnmarshalJSON(t *testing.T) {
	var req UpdateMovementRequest
	if err := json.Unmarshal([]byte(`{"cantidad":5,"tipo":"compra"}`), &req); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.Quantity == nil || *req.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %v", req.Quantity)
	}
	if req.Type == nil || *req.Type != "buy" {
		t.Errorf("Expected type buy, got %v", req.Type)
	}
	if req.Date != nil || req.Note != nil || req.UnitPrice != nil {
		t.Error("Expected absent fields to stay nil")
	}
}

func TestCreateClientRequest_UnmarshalJSON(t *testing.T) {
	var req CreateClientRequest
	body := `{"nombre":"Ana","tipo_servicio":"asesoramiento","correo":"ana@example.com","perfil_riesgo":"moderado","honorarios":"1,5"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.Name != "Ana" || req.ServiceType != "asesoramiento" || req.Email != "ana@example.com" || req.RiskProfile != "moderado" {
		t.Errorf("Unexpected fields: %+v", req)
	}
	if req.FeePercent != 1.5 {
		t.Errorf("Expected fee 1.5, got %v", req.FeePercent)
	}
}
