package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestHealthz(t *testing.T) {
	handler, _ := newTestServer(t)

	w := doRequest(t, handler, http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Healthz() status = %d", w.Code)
	}
	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("Healthz() response is not valid JSON: %v", err)
	}
	if status.Version != "test-version" {
		t.Errorf("Healthz() version = %q", status.Version)
	}
}

func TestReadyz(t *testing.T) {
	t.Run("with event store", func(t *testing.T) {
		handler, _ := newTestServer(t)
		w := doRequest(t, handler, http.MethodGet, "/readyz", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Readyz() status = %d", w.Code)
		}
		var status HealthStatus
		if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
			t.Fatalf("Readyz() response is not valid JSON: %v", err)
		}
		if status.Components["styleStore"].Status != "healthy" {
			t.Errorf("styleStore component = %+v", status.Components["styleStore"])
		}
		if status.Components["eventStore"].Status != "available" {
			t.Errorf("eventStore component = %+v", status.Components["eventStore"])
		}
	})

	t.Run("without event store", func(t *testing.T) {
		handler, _ := newTestServer(t, WithNilEventStore())
		w := doRequest(t, handler, http.MethodGet, "/readyz", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Readyz() status = %d, event store is optional", w.Code)
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	handler, _ := newTestServer(t)
	w := doRequest(t, handler, http.MethodOptions, "/styles/roads", "", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
