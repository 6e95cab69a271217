package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/middleware"
)

// TestLogger tests the request logging middleware.
//
// WHY: The request path is attacker controlled. A CR/LF in it must never
// reach the log, and the level must follow the response status.
func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
		wantPath  string
	}{
		{"ok request", "/api/client", http.StatusOK, "info", "/api/client"},
		{"client error", "/api/movement", http.StatusUnprocessableEntity, "warn", "/api/movement"},
		{"server error", "/api/price", http.StatusInternalServerError, "error", "/api/price"},
		{"newline stripped", "/api/client%0d%0afake", http.StatusNotFound, "warn", "/api/clientfake"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			handler := chimw.RequestID(middleware.Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("Expected level %s, got %v", tt.wantLevel, entry["level"])
			}
			if entry["path"] != tt.wantPath {
				t.Errorf("Expected path %q, got %v", tt.wantPath, entry["path"])
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("Expected status %d, got %v", tt.status, entry["status"])
			}
			if entry["request_id"] == "" || entry["request_id"] == nil {
				t.Error("Expected a request id")
			}
		})
	}
}

func TestLogger_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := middleware.Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log line: %v", err)
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("Expected status 200, got %v", entry["status"])
	}
	if entry["bytes"] != float64(2) {
		t.Errorf("Expected 2 bytes, got %v", entry["bytes"])
	}
}
