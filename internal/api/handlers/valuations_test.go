package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/handlers"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/testutil"
)

// TestValuationHandler_PortfolioValuation tests GET /api/portfolio/{uuid}/valuation.
//
// WHY: An unpriced holding must reach the client as a JSON null, not as 0,
// so the front end can flag it instead of showing a worthless position.
func TestValuationHandler_PortfolioValuation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewValuationHandler(testutil.NewTestValuationService(t, db))

	client := testutil.CreateClient(t, db, "Ana")
	portfolio := testutil.CreatePortfolio(t, db, client.ID, "Main")
	ypf := testutil.CreateSecurity(t, db, "YPF")
	bono := testutil.CreateSecurity(t, db, "Bono Privado XYZ")
	testutil.NewMovement(client.ID, portfolio.ID, ypf.ID).Buy(10).WithDate(testutil.Day("2024-05-01")).Build(t, db)
	testutil.NewMovement(client.ID, portfolio.ID, bono.ID).Buy(3).WithDate(testutil.Day("2024-05-01")).Build(t, db)
	testutil.CreatePriceEntry(t, db, testutil.Day("2024-05-02"), "ypfd", 1234.5, true)

	t.Run("unpriced line is null", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/valuation?date=2024-05-02",
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.PortfolioValuation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var raw struct {
			Lines []map[string]interface{} `json:"lines"`
			Total float64                  `json:"subtotal"`
		}
		if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if raw.Total != 12345 {
			t.Errorf("Expected subtotal 12345, got %v", raw.Total)
		}
		for _, line := range raw.Lines {
			if line["securityName"] != "Bono Privado XYZ" {
				continue
			}
			value, present := line["value"]
			if !present || value != nil {
				t.Errorf("Expected value to be JSON null, got %v (present=%v)", value, present)
			}
		}
	})

	t.Run("unknown portfolio", func(t *testing.T) {
		id := testutil.MakeID()
		w := httptest.NewRecorder()
		handler.PortfolioValuation(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id+"/valuation",
			map[string]string{"uuid": id}))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestValuationHandler_ClientAndFee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewValuationHandler(testutil.NewTestValuationService(t, db))

	client := testutil.NewClient().WithName("Ana").WithFeePercent(2).Build(t, db)
	portfolio := testutil.CreatePortfolio(t, db, client.ID, "Main")
	sec := testutil.CreateSecurity(t, db, "GGAL")
	testutil.NewMovement(client.ID, portfolio.ID, sec.ID).Buy(4).WithDate(testutil.Day("2024-05-01")).Build(t, db)
	testutil.CreatePriceEntry(t, db, testutil.Day("2024-05-01"), "ggal", 3000, true)
	params := map[string]string{"uuid": client.ID}

	w := httptest.NewRecorder()
	handler.ClientValuation(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/client/x/valuation?date=2024-05-01", params))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var valuation model.ClientValuation
	if err := json.NewDecoder(w.Body).Decode(&valuation); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if valuation.Total != 12000 {
		t.Errorf("Expected total 12000, got %v", valuation.Total)
	}

	w = httptest.NewRecorder()
	handler.AdvisoryFee(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/client/x/fee?date=2024-05-01", params))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var fee model.AdvisoryFee
	if err := json.NewDecoder(w.Body).Decode(&fee); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if fee.Fee != 240 {
		t.Errorf("Expected fee 240, got %v", fee.Fee)
	}
}

func TestValuationHandler_History(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestValuationService(t, db)
	handler := handlers.NewValuationHandler(svc)

	client := testutil.CreateClient(t, db, "Ana")
	if _, err := svc.SnapshotAll(t.Context(), testutil.Day("2024-05-01")); err != nil {
		t.Fatalf("SnapshotAll() returned unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		query      map[string]string
		wantStatus int
		wantCount  int
	}{
		{"all history", nil, http.StatusOK, 1},
		{"one client", map[string]string{"clientId": client.ID}, http.StatusOK, 1},
		{"outside range", map[string]string{"startDate": "2024-06-01"}, http.StatusOK, 0},
		{"inverted range", map[string]string{"startDate": "2024-06-01", "endDate": "2024-01-01"}, http.StatusBadRequest, 0},
		{"bad client id", map[string]string{"clientId": "ana"}, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.History(w, testutil.NewRequestWithQueryParams(http.MethodGet, "/api/valuation/history", tt.query))

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var history []model.ValuationSnapshot
			if err := json.NewDecoder(w.Body).Decode(&history); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(history) != tt.wantCount {
				t.Errorf("Expected %d snapshots, got %d", tt.wantCount, len(history))
			}
		})
	}
}
