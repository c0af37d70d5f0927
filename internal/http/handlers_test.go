package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tally/internal/codec"
	"tally/internal/core"
	"tally/internal/lists"
	"tally/internal/log"
	"tally/internal/store/memory"
)

const testOwner = "local"

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	backend := memory.NewSeeded()
	recent := lists.NewRecent(backend, testOwner, 4)
	monthly := lists.NewMonthly(backend, testOwner, time.Minute)
	logger := log.New(log.DefaultConfig())
	return NewServer("127.0.0.1:0", backend, recent, monthly, nil, testOwner, logger), backend
}

func do(t *testing.T, s *Server, method, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func foodSelection(t *testing.T, backend *memory.Store) string {
	t.Helper()
	categories, err := backend.ListCategories(context.Background(), testOwner)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range categories {
		if c.Value == "Food" {
			return codec.EncodeSelection(c)
		}
	}
	t.Fatal("seeded taxonomy has no Food category")
	return ""
}

func TestCreateTransaction(t *testing.T) {
	s, backend := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/transactions", map[string]string{
		"description": "Coffee",
		"type":        "expense",
		"amount":      "4.50",
		"category":    foodSelection(t, backend),
		"date":        "2025-08-01",
		"account":     "Checking",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	all, err := backend.ListAll(context.Background(), testOwner)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("stored %d transactions, want 1", len(all))
	}
	got := all[0]
	if got.Description != "Coffee" || got.Amount.Cents != 450 || got.Category != "Food" {
		t.Errorf("stored %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped on create")
	}

	// The commit refreshed the recent list, so the API serves the new
	// record without another store round trip.
	rec = do(t, s, http.MethodGet, "/transactions/recent", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("recent status = %d", rec.Code)
	}
	var recentItems []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &recentItems); err != nil {
		t.Fatal(err)
	}
	if len(recentItems) != 1 || recentItems[0].Description != "Coffee" {
		t.Errorf("recent = %+v", recentItems)
	}
}

func TestCreateValidation(t *testing.T) {
	s, backend := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/transactions", map[string]string{
		"type":     "expense",
		"amount":   "4.50",
		"category": foodSelection(t, backend),
		"date":     "2025-08-01",
		"account":  "Checking",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["field"] != "description" {
		t.Errorf("field = %q, want description", body["field"])
	}

	all, _ := backend.ListAll(context.Background(), testOwner)
	if len(all) != 0 {
		t.Errorf("rejected draft reached the store: %+v", all)
	}
}

func TestUpdateTransaction(t *testing.T) {
	s, backend := newTestServer(t)
	created := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)
	id, err := backend.Create(context.Background(), testOwner, core.Transaction{
		Description: "Groceries",
		Type:        core.Expense,
		Amount:      core.Money{Cents: 3200},
		Category:    "Food",
		Date:        core.LocalDate{Year: 2025, Month: time.July, Day: 1},
		Account:     "Checking",
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := do(t, s, http.MethodPut, "/transactions/"+id, map[string]string{
		"amount": "35.00",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	got, err := backend.Get(context.Background(), testOwner, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Amount.Cents != 3500 {
		t.Errorf("Amount.Cents = %d, want 3500", got.Amount.Cents)
	}
	if got.Description != "Groceries" {
		t.Errorf("untouched field lost: Description = %q", got.Description)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, created)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPut, "/transactions/nope", map[string]string{"amount": "1.00"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMalformedSelection(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/transactions", map[string]string{
		"description": "Coffee",
		"type":        "expense",
		"amount":      "4.50",
		"category":    "{not json",
		"date":        "2025-08-01",
		"account":     "Checking",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestTaxonomyEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("categories status = %d", rec.Code)
	}
	var categories []core.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatal(err)
	}
	if len(categories) != 4 {
		t.Errorf("got %d categories, want 4", len(categories))
	}

	rec = do(t, s, http.MethodGet, "/accounts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("accounts status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Checking") {
		t.Errorf("accounts body = %s", rec.Body)
	}
}

func TestMethodGuards(t *testing.T) {
	s, _ := newTestServer(t)
	cases := []struct {
		method, path string
	}{
		{http.MethodGet, "/transactions"},
		{http.MethodPost, "/transactions/abc"},
		{http.MethodPost, "/transactions/recent"},
		{http.MethodDelete, "/categories"},
	}
	for _, tc := range cases {
		rec := do(t, s, tc.method, tc.path, nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s = %d, want 405", tc.method, tc.path, rec.Code)
		}
	}
}

func TestMonthEndpoint(t *testing.T) {
	s, backend := newTestServer(t)
	for day, cents := range map[int]int64{3: 1200, 17: 800} {
		_, err := backend.Create(context.Background(), testOwner, core.Transaction{
			Description: "entry",
			Type:        core.Expense,
			Amount:      core.Money{Cents: cents},
			Category:    "Food",
			Date:        core.LocalDate{Year: 2025, Month: time.June, Day: day},
			Account:     "Checking",
			CreatedAt:   time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	rec := do(t, s, http.MethodGet, "/transactions/month?year=2025&month=6", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var items []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("got %d transactions for 2025-06, want 2", len(items))
	}

	rec = do(t, s, http.MethodGet, "/transactions/month?year=2025&month=1", nil)
	var empty []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &empty); err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d transactions for 2025-01, want 0", len(empty))
	}
}
