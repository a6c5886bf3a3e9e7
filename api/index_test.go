package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// The router is built once per process, so a single test drives the
// whole surface with a fixed environment.
func TestHandler(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("USE_TIGRIS", "")

	rec := httptest.NewRecorder()
	Handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var root map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &root); err != nil {
		t.Fatalf("Failed to decode root payload: %v", err)
	}
	if root["deployment"] != "Vercel Production" {
		t.Errorf("Expected deployment %q, got %v", "Vercel Production", root["deployment"])
	}

	// Second request reuses the initialized router.
	rec = httptest.NewRecorder()
	Handler(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 from ping, got %d", rec.Code)
	}

	// No local data directory and no object store: the listing falls
	// back to the static names.
	rec = httptest.NewRecorder()
	Handler(rec, httptest.NewRequest(http.MethodGet, "/sources", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from sources, got %d", rec.Code)
	}

	var listing map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to decode sources payload: %v", err)
	}
	if len(listing["sources"]) == 0 {
		t.Error("Expected fallback sources, got none")
	}
}
