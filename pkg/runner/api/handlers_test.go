package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/analysis"
	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/store"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryKV) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *memoryKV) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return v, nil
}

func (m *memoryKV) Write(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), val...)
	return nil
}

func (m *memoryKV) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	events, err := store.Open(ctx, &memoryKV{data: map[string][]byte{}}, store.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	counter := 0
	svc, err := app.New(ctx, events, app.Reducer{
		NewID: func() (string, error) {
			counter++
			return "api-" + strconv.Itoa(counter), nil
		},
		Owner:  "demo-user",
		Locale: "en",
		Now:    func() time.Time { return fixedNow },
	}, app.Options{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return Runner{Service: svc}.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestCreateAndList(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/items", item.Fields{
		Title: "Gym", Date: "2026-10-19", Time: "18:00", Category: "health",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[item.Item](t, rec)
	if created.ID != "api-1" || created.Priority != "medium" || created.Color == "" {
		t.Fatalf("unexpected item %+v", created)
	}

	rec = do(t, h, http.MethodGet, "/api/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if list := decodeBody[[]item.Item](t, rec); len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	rec = do(t, h, http.MethodGet, "/api/items?category=work", nil)
	if list := decodeBody[[]item.Item](t, rec); len(list) != 0 {
		t.Fatalf("expected empty work list, got %+v", list)
	}
}

func TestCreateValidationErrors(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/items", item.Fields{Date: "2026-13-40", Category: "chores"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody[ErrorResponse](t, rec)
	for _, field := range []string{"title", "date", "category"} {
		if resp.Fields[field] == "" {
			t.Errorf("expected message for %s, got %+v", field, resp.Fields)
		}
	}

	rec = do(t, h, http.MethodGet, "/api/items", nil)
	if list := decodeBody[[]item.Item](t, rec); len(list) != 0 {
		t.Fatalf("invalid create must not store, got %+v", list)
	}
}

func TestBadJSON(t *testing.T) {
	h := newHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateToggleDelete(t *testing.T) {
	h := newHandler(t)
	created := decodeBody[item.Item](t, do(t, h, http.MethodPost, "/api/items", item.Fields{
		Title: "Draft", Date: "2026-10-20", Category: "work",
	}))

	rec := do(t, h, http.MethodPut, "/api/items/"+created.ID, item.Fields{
		Title: "Final", Date: "2026-10-21", Category: "education", Priority: "high",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[item.Item](t, rec)
	if updated.Title != "Final" || updated.Date != "2026-10-21" || updated.Completed {
		t.Fatalf("unexpected update %+v", updated)
	}

	rec = do(t, h, http.MethodPost, "/api/items/"+created.ID+"/toggle", nil)
	if toggled := decodeBody[item.Item](t, rec); !toggled.Completed {
		t.Fatalf("expected completed item, got %+v", toggled)
	}

	rec = do(t, h, http.MethodDelete, "/api/items/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/items/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestNotFound(t *testing.T) {
	h := newHandler(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/items/missing"},
		{http.MethodDelete, "/api/items/missing"},
		{http.MethodPost, "/api/items/missing/toggle"},
	} {
		var body any
		if tc.method == http.MethodPut {
			body = item.Fields{Title: "x", Date: "2026-10-19", Category: "work"}
		}
		rec := do(t, h, tc.method, tc.path, body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestDayOrdering(t *testing.T) {
	h := newHandler(t)
	for _, f := range []item.Fields{
		{Title: "Late", Date: "2026-10-19", Time: "20:00", Category: "social"},
		{Title: "Morning", Date: "2026-10-19", Time: "07:30", Category: "health"},
		{Title: "Anytime", Date: "2026-10-19", Category: "personal"},
		{Title: "Tomorrow", Date: "2026-10-20", Category: "work"},
	} {
		if rec := do(t, h, http.MethodPost, "/api/items", f); rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", f.Title, rec.Code)
		}
	}

	rec := do(t, h, http.MethodGet, "/api/days/today", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	day := decodeBody[DayResponse](t, rec)
	if day.Date != "2026-10-19" || len(day.Items) != 3 {
		t.Fatalf("unexpected day %+v", day)
	}
	want := []string{"Anytime", "Morning", "Late"}
	for i, it := range day.Items {
		if it.Title != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], it.Title)
		}
	}

	if rec := do(t, h, http.MethodGet, "/api/days/not-a-day", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}
}

func TestAnalysisAndSuggestions(t *testing.T) {
	h := newHandler(t)
	created := decodeBody[item.Item](t, do(t, h, http.MethodPost, "/api/items", item.Fields{
		Title: "Ship", Date: "2026-10-19", Category: "work", Priority: "high",
	}))
	do(t, h, http.MethodPost, "/api/items/"+created.ID+"/toggle", nil)
	do(t, h, http.MethodPost, "/api/items", item.Fields{Title: "Plan", Date: "2026-10-23", Category: "work"})

	rec := do(t, h, http.MethodGet, "/api/analysis?date=2026-10-21", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	weekly := decodeBody[analysis.Weekly](t, rec)
	if weekly.TotalTasks != 2 || weekly.CompletedTasks != 1 || weekly.ProductivityScore != 50 || weekly.WorkLifeBalance != 0 {
		t.Fatalf("unexpected analysis %+v", weekly)
	}

	rec = do(t, h, http.MethodGet, "/api/suggestions", nil)
	res := decodeBody[SuggestionsResponse](t, rec)
	if res.WeekStart != "2026-10-19" || len(res.Suggestions) == 0 {
		t.Fatalf("unexpected suggestions %+v", res)
	}
}

func TestQuoteAndHealth(t *testing.T) {
	h := newHandler(t)

	q := decodeBody[QuoteResponse](t, do(t, h, http.MethodGet, "/api/quote", nil))
	if q.Date != "2026-10-19" || q.Quote == "" {
		t.Fatalf("unexpected quote %+v", q)
	}

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newHandler(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/items", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}
