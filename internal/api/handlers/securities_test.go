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

// TestSecurityHandler_ResolveSecurity tests POST /api/security.
//
// WHY: The same security is typed many ways ("Dólar MEP", "dolar mep").
// Resolving must return the existing row instead of creating a duplicate.
func TestSecurityHandler_ResolveSecurity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewSecurityHandler(testutil.NewTestSecurityService(t, db))

	w := httptest.NewRecorder()
	handler.ResolveSecurity(w, testutil.NewJSONRequest(http.MethodPost, "/api/security", `{"especie":"Dólar MEP"}`, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created model.Security
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	w = httptest.NewRecorder()
	handler.ResolveSecurity(w, testutil.NewJSONRequest(http.MethodPost, "/api/security", `{"name":"  dolar   mep "}`, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resolved model.Security
	if err := json.NewDecoder(w.Body).Decode(&resolved); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resolved.ID != created.ID {
		t.Errorf("Expected existing security %s, got %s", created.ID, resolved.ID)
	}
	testutil.AssertRowCount(t, db, "security", 1)

	w = httptest.NewRecorder()
	handler.ResolveSecurity(w, testutil.NewJSONRequest(http.MethodPost, "/api/security", `{"name":"   "}`, nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank name, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.Securities(w, httptest.NewRequest(http.MethodGet, "/api/security", nil))
	var securities []model.Security
	if err := json.NewDecoder(w.Body).Decode(&securities); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(securities) != 1 {
		t.Errorf("Expected 1 security, got %d", len(securities))
	}
}
