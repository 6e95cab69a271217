package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/response"
)

func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondJSON(w, http.StatusCreated, map[string]string{"id": "x"})

		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("nil data writes no body", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("un-encodable data keeps the status", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondJSON(w, http.StatusOK, map[string]interface{}{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRespondError(t *testing.T) {
	t.Run("structured details", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondError(w, http.StatusUnprocessableEntity, "insufficient balance", map[string]float64{"available": 60})

		var body struct {
			Error   string             `json:"error"`
			Details map[string]float64 `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body.Error != "insufficient balance" || body.Details["available"] != 60 {
			t.Errorf("Unexpected body: %+v", body)
		}
	})

	t.Run("empty string details are omitted", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondError(w, http.StatusNotFound, "client not found", "")

		var body map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if _, ok := body["details"]; ok {
			t.Errorf("Expected no details key, got %v", body)
		}
	})
}
