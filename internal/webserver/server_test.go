package webserver

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vanlineshq/moveline/internal/events"
	"github.com/vanlineshq/moveline/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	broker := events.NewBroker()
	st, err := store.NewWithDB(db, store.WithBroker(broker))
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return New(st, broker), st
}

func seedRequests(t *testing.T, st *store.Store) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	seed := []struct {
		id       string
		name     string
		building string
	}{
		{"100001", "John Smith", "house"},
		{"100002", "Jane Doe", "apartment"},
		{"100003", "John Appleseed", "house"},
	}
	for i, s := range seed {
		rec := &store.MovingRequest{
			RequestID:        s.id,
			CustomerName:     s.name,
			Email:            "test@example.com",
			PhoneNumber:      "555-1234",
			PhoneType:        "cell",
			FromAddress:      "123 Main St",
			FromBuildingType: s.building,
			FromBedrooms:     2,
			ToAddress:        "456 Oak Ave",
			MoveDate:         "2024-03-15",
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}
		if _, err := st.Create(rec); err != nil {
			t.Fatalf("seed %s failed: %v", s.id, err)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Status   string `json:"status"`
		Database bool   `json:"database"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Status != healthStatus {
		t.Errorf("expected status %q, got %q", healthStatus, body.Status)
	}
	if !body.Database {
		t.Error("expected database true for healthy store")
	}
}

func TestHandleListRequests(t *testing.T) {
	srv, st := newTestServer(t)
	seedRequests(t, st)

	req := httptest.NewRequest("GET", "/api/requests", nil)
	w := httptest.NewRecorder()
	srv.handleListRequests(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var requests []store.MovingRequest
	if err := json.NewDecoder(w.Body).Decode(&requests); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(requests))
	}
	// Newest first
	if requests[0].RequestID != "100003" {
		t.Errorf("expected newest first (100003), got %q", requests[0].RequestID)
	}
}

func TestHandleListRequestsSearchFilter(t *testing.T) {
	srv, st := newTestServer(t)
	seedRequests(t, st)

	req := httptest.NewRequest("GET", "/api/requests?search=john", nil)
	w := httptest.NewRecorder()
	srv.handleListRequests(w, req)

	var requests []store.MovingRequest
	json.NewDecoder(w.Body).Decode(&requests)
	if len(requests) != 2 {
		t.Errorf("expected 2 matches for 'john', got %d", len(requests))
	}

	// Search also matches request ids.
	req = httptest.NewRequest("GET", "/api/requests?search=100002", nil)
	w = httptest.NewRecorder()
	srv.handleListRequests(w, req)

	json.NewDecoder(w.Body).Decode(&requests)
	if len(requests) != 1 || requests[0].CustomerName != "Jane Doe" {
		t.Errorf("expected Jane Doe for id search, got %+v", requests)
	}
}

func TestHandleListRequestsBuildingTypeFilter(t *testing.T) {
	srv, st := newTestServer(t)
	seedRequests(t, st)

	req := httptest.NewRequest("GET", "/api/requests?building_type=apartment", nil)
	w := httptest.NewRecorder()
	srv.handleListRequests(w, req)

	var requests []store.MovingRequest
	json.NewDecoder(w.Body).Decode(&requests)
	if len(requests) != 1 {
		t.Fatalf("expected 1 apartment request, got %d", len(requests))
	}
	if requests[0].FromBuildingType != "apartment" {
		t.Errorf("expected apartment, got %q", requests[0].FromBuildingType)
	}
}

func TestHandleGetRequest(t *testing.T) {
	srv, st := newTestServer(t)
	seedRequests(t, st)

	req := httptest.NewRequest("GET", "/api/requests/100001", nil)
	req.SetPathValue("id", "100001")
	w := httptest.NewRecorder()
	srv.handleGetRequest(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var rec store.MovingRequest
	json.NewDecoder(w.Body).Decode(&rec)
	if rec.CustomerName != "John Smith" {
		t.Errorf("expected John Smith, got %q", rec.CustomerName)
	}
}

func TestHandleGetRequestNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/requests/999999", nil)
	req.SetPathValue("id", "999999")
	w := httptest.NewRecorder()
	srv.handleGetRequest(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHandleDeleteRequest(t *testing.T) {
	srv, st := newTestServer(t)
	seedRequests(t, st)

	req := httptest.NewRequest("DELETE", "/api/requests/100002", nil)
	req.SetPathValue("id", "100002")
	w := httptest.NewRecorder()
	srv.handleDeleteRequest(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	rec, err := st.Get("100002")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec != nil {
		t.Error("expected record gone after delete")
	}
}

func TestHandleDeleteRequestNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("DELETE", "/api/requests/999999", nil)
	req.SetPathValue("id", "999999")
	w := httptest.NewRecorder()
	srv.handleDeleteRequest(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHandleExportCSV(t *testing.T) {
	srv, st := newTestServer(t)
	seedRequests(t, st)

	req := httptest.NewRequest("GET", "/api/requests/export", nil)
	w := httptest.NewRecorder()
	srv.handleExportCSV(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Request ID" {
		t.Errorf("expected Request ID header, got %q", rows[0][0])
	}
	if rows[1][0] != "100003" {
		t.Errorf("expected newest first in csv, got %q", rows[1][0])
	}
}

func TestHandlerRoutesAndCORS(t *testing.T) {
	srv, st := newTestServer(t)
	seedRequests(t, st)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/requests")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if origin := resp.Header.Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS header, got %q", origin)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from /metrics, got %d", resp.StatusCode)
	}
}

func TestSSEDeliversRecordChanges(t *testing.T) {
	srv, st := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/events")
	if err != nil {
		t.Fatalf("sse request failed: %v", err)
	}
	defer resp.Body.Close()

	// Give the subscription a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	if _, err := st.Create(&store.MovingRequest{
		RequestID:        "321321",
		CustomerName:     "John Smith",
		Email:            "john@example.com",
		PhoneNumber:      "555-1234",
		PhoneType:        "cell",
		FromAddress:      "123 Main St",
		FromBuildingType: "house",
		FromBedrooms:     1,
		ToAddress:        "456 Oak Ave",
		MoveDate:         "2024-03-15",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	buf := make([]byte, 4096)
	deadline := time.Now().Add(2 * time.Second)
	var received strings.Builder
	for time.Now().Before(deadline) {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			received.Write(buf[:n])
		}
		if strings.Contains(received.String(), "record-change") {
			break
		}
		if err != nil {
			break
		}
	}
	if !strings.Contains(received.String(), `"request_id":"321321"`) {
		t.Errorf("expected record-change event, got %q", received.String())
	}
}
