package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/validation"
)

type memoryKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	failNext bool
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
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
	return append([]byte(nil), v...), nil
}

func (m *memoryKV) Write(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return errors.New("write failed")
	}
	m.data[key] = append([]byte(nil), val...)
	return nil
}

func (m *memoryKV) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.Local)

func testReducer() Reducer {
	counter := 0
	return Reducer{
		NewID: func() (string, error) {
			counter++
			return fmt.Sprintf("id-%d", counter), nil
		},
		Owner:  "demo-user",
		Locale: "en",
		Now:    func() time.Time { return fixedNow },
	}
}

func newTestService(t *testing.T, kv store.KV) *Service {
	t.Helper()
	ctx := context.Background()
	events, err := store.Open(ctx, kv, store.Options{})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc, err := New(ctx, events, testReducer(), Options{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func gym() item.Fields {
	return item.Fields{Title: "Gym", Date: "2026-10-19", Time: "18:00", Category: category.Health}
}

func TestCreate(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()

	it, err := svc.Create(ctx, gym())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if it.ID != "id-1" || it.Completed || it.UserID != "demo-user" {
		t.Fatalf("unexpected item %+v", it)
	}
	if it.Color != category.ColorOf(category.Health) {
		t.Fatalf("colour = %s", it.Color)
	}
	if it.Priority != category.Medium {
		t.Fatalf("priority default = %s", it.Priority)
	}
	st := svc.State()
	if len(st.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(st.Items))
	}
	if len(st.Suggestions) == 0 {
		t.Fatal("expected suggestions recomputed after create")
	}
	if st.EditingID != "" || st.Draft.Title != "" {
		t.Fatalf("draft not reset: %+v", st.Draft)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()

	tests := map[string]func(f *item.Fields){
		"empty title":      func(f *item.Fields) { f.Title = "" },
		"empty date":       func(f *item.Fields) { f.Date = "" },
		"missing category": func(f *item.Fields) { f.Category = "" },
		"unknown category": func(f *item.Fields) { f.Category = "chores" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := gym()
			mutate(&f)
			_, err := svc.Create(ctx, f)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			var fe validation.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected field errors, got %v", err)
			}
			if n := len(svc.Items(ctx)); n != 0 {
				t.Fatalf("store grew to %d", n)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()
	orig, _ := svc.Create(ctx, gym())
	if _, err := svc.Toggle(ctx, orig.ID); err != nil {
		t.Fatal(err)
	}

	f := item.Fields{Title: "Report", Date: "2026-10-20", Category: category.Work, Priority: category.High}
	got, err := svc.Update(ctx, orig.ID, f)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ID != orig.ID || !got.Completed {
		t.Fatalf("identity or completion lost: %+v", got)
	}
	if got.Title != "Report" || got.Date != "2026-10-20" || got.Time != "" || got.Category != category.Work || got.Priority != category.High {
		t.Fatalf("fields not replaced: %+v", got)
	}
	if got.Color != category.ColorOf(category.Work) {
		t.Fatalf("colour not recomputed: %s", got.Color)
	}

	if _, err := svc.Update(ctx, "missing", f); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	bad := f
	bad.Title = ""
	if _, err := svc.Update(ctx, orig.ID, bad); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if after, _ := svc.Find(ctx, orig.ID); after.Title != "Report" {
		t.Fatalf("rejected update changed item: %+v", after)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()
	a, _ := svc.Create(ctx, gym())
	_, _ = svc.Create(ctx, gym())

	if _, err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := len(svc.Items(ctx)); n != 2 {
		t.Fatalf("missing delete changed store: %d", n)
	}
	if _, err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := len(svc.Items(ctx)); n != 1 {
		t.Fatalf("expected 1 item, got %d", n)
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()
	it, _ := svc.Create(ctx, gym())

	first, err := svc.Toggle(ctx, it.ID)
	if err != nil || !first.Completed {
		t.Fatalf("first toggle: %+v, %v", first, err)
	}
	second, err := svc.Toggle(ctx, it.ID)
	if err != nil || second != it {
		t.Fatalf("second toggle: %+v, %v", second, err)
	}
	if _, err := svc.Toggle(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := newMemoryKV()
	svc := newTestService(t, kv)
	ctx := context.Background()
	for _, f := range []item.Fields{gym(), {Title: "Read", Date: "2026-10-21", Category: category.Education, Priority: category.Low}} {
		if _, err := svc.Create(ctx, f); err != nil {
			t.Fatal(err)
		}
	}
	_, _ = svc.Toggle(ctx, "id-2")
	want := svc.Items(ctx)

	reopened := newTestService(t, kv)
	got := reopened.Items(ctx)
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d differs:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestFailedWriteIsNotCommitted(t *testing.T) {
	kv := newMemoryKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	kv.failNext = true
	if _, err := svc.Create(ctx, gym()); err == nil {
		t.Fatal("expected write error")
	}
	if n := len(svc.Items(ctx)); n != 0 {
		t.Fatalf("uncommitted create visible: %d", n)
	}
}

func TestNavigationIsRemembered(t *testing.T) {
	kv := newMemoryKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	if _, err := svc.SetView(ctx, calendar.Week); err != nil {
		t.Fatal(err)
	}
	nav, err := svc.Advance(ctx, calendar.Forward)
	if err != nil {
		t.Fatal(err)
	}
	if nav.AnchorDate() != "2026-10-26" {
		t.Fatalf("anchor = %s", nav.AnchorDate())
	}
	if _, err := svc.SetFilter(ctx, category.Filter(category.Work)); err != nil {
		t.Fatal(err)
	}

	st := newTestService(t, kv).State()
	if st.Nav.AnchorDate() != "2026-10-26" || st.Nav.View != calendar.Week || st.Filter != category.Filter(category.Work) {
		t.Fatalf("restored state = %+v filter=%s", st.Nav, st.Filter)
	}

	nav, _ = svc.Today(ctx)
	if nav.AnchorDate() != "2026-10-19" || nav.View != calendar.Week {
		t.Fatalf("today = %+v", nav)
	}
}

func TestBeginEditAndReset(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()
	it, _ := svc.Create(ctx, gym())

	draft, err := svc.BeginEdit(ctx, it.ID)
	if err != nil {
		t.Fatal(err)
	}
	if draft.Title != "Gym" || svc.State().EditingID != it.ID {
		t.Fatalf("draft = %+v", draft)
	}
	draft = svc.ResetForm(ctx)
	if draft.Title != "" || draft.Category != category.Work || draft.Priority != category.Medium || draft.Date != "2026-10-19" {
		t.Fatalf("reset draft = %+v", draft)
	}
	if _, err := svc.BeginEdit(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzeAndSuggest(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()
	_, _ = svc.Create(ctx, item.Fields{Title: "Ship", Date: "2026-10-21", Category: category.Health, Priority: category.High})

	w := svc.Analyze(ctx)
	if w.TotalTasks != 1 || w.WorkLifeBalance != 100 {
		t.Fatalf("analysis = %+v", w)
	}
	if svc.State().Analysis == nil {
		t.Fatal("analysis not stored in state")
	}
	got := svc.Suggest(ctx)
	if len(got) != 2 {
		t.Fatalf("suggestions = %q", got)
	}
}

func TestCreateRepeating(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()

	items, err := svc.CreateRepeating(ctx, gym(), "FREQ=DAILY;COUNT=3", 0)
	if err != nil {
		t.Fatalf("create repeating: %v", err)
	}
	if len(items) != 3 || items[2].Date != "2026-10-21" {
		t.Fatalf("items = %+v", items)
	}
	if _, err := svc.CreateRepeating(ctx, gym(), "FREQ=NEVER", 0); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestImportIsAllOrNothingOnValidation(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()

	_, err := svc.Import(ctx, []item.Fields{gym(), {Title: "", Date: "2026-10-19", Category: category.Work}})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if n := len(svc.Items(ctx)); n != 0 {
		t.Fatalf("partial import stored %d items", n)
	}
}

func TestReport(t *testing.T) {
	svc := newTestService(t, newMemoryKV())
	ctx := context.Background()
	a, _ := svc.Create(ctx, gym())
	b, _ := svc.Create(ctx, item.Fields{Title: "Write", Date: "2026-10-18", Category: category.Work})
	_, _ = svc.Create(ctx, item.Fields{Title: "Open", Date: "2026-10-19", Category: category.Work})
	old, _ := svc.Create(ctx, item.Fields{Title: "Old", Date: "2026-09-01", Category: category.Work})
	for _, id := range []string{a.ID, b.ID, old.ID} {
		_, _ = svc.Toggle(ctx, id)
	}

	res, err := svc.Report(ctx, fixedNow, fixedNow.AddDate(0, 0, -7))
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 || len(res.Sections) != 2 {
		t.Fatalf("report = %+v", res)
	}
	if res.Sections[0].Category != category.Work || res.Sections[1].Category != category.Health {
		t.Fatalf("sections out of registry order: %+v", res.Sections)
	}
}

func TestDarkModePersists(t *testing.T) {
	kv := newMemoryKV()
	svc := newTestService(t, kv)
	ctx := context.Background()
	if svc.State().DarkMode {
		t.Fatal("expected light default")
	}
	if err := svc.SetDarkMode(ctx, true); err != nil {
		t.Fatal(err)
	}
	if !newTestService(t, kv).State().DarkMode {
		t.Fatal("dark mode not restored")
	}
}

func TestConcurrentCreates(t *testing.T) {
	kv := newMemoryKV()
	events, _ := store.Open(context.Background(), kv, store.Options{})
	r := NewReducer("demo-user", "en")
	svc, err := New(context.Background(), events, r, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), gym()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	items := svc.Items(context.Background())
	if len(items) != 20 {
		t.Fatalf("expected 20 items, got %d", len(items))
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}
