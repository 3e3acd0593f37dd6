package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/item"
)

type testConfig struct {
	path    string
	recover bool
}

func (t testConfig) BasePath() string     { return t.path }
func (t testConfig) Owner() string        { return DefaultOwner }
func (t testConfig) Locale() string       { return DefaultLocale }
func (t testConfig) RecoverCorrupt() bool { return t.recover }

func TestWatchEmitsItemChanges(t *testing.T) {
	base := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer, err := Load(ctx, testConfig{path: base}, nil)
	if err != nil {
		t.Fatalf("load writer: %v", err)
	}
	watcher, err := Load(ctx, testConfig{path: base}, nil)
	if err != nil {
		t.Fatalf("load watcher: %v", err)
	}

	ch, err := watcher.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	it := item.New("1", DefaultOwner, item.Fields{Title: "Gym", Date: "2026-10-19", Category: category.Health})
	if err := writer.Append(it); err != nil {
		t.Fatalf("append: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key != KeyItems && evt.Key != "" {
				continue
			}
			if err := watcher.Reload(ctx); err != nil {
				t.Fatalf("reload: %v", err)
			}
			if watcher.Len() != 1 {
				t.Fatalf("expected 1 item after reload, got %d", watcher.Len())
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for item change event")
		}
	}
}

func TestKeyForPath(t *testing.T) {
	base := "/tmp/agenda"
	cases := map[string]string{
		"/tmp/agenda/agenda-items": KeyItems,
		"/tmp/agenda/dark-mode":    KeyDarkMode,
		"/tmp/agenda/view-state":   KeyViewState,
		"/tmp/agenda/diskv-123456": "",
		"/tmp/agenda/nested/file":  "",
		"/tmp/agenda":              "",
		"/elsewhere/agenda-items":  "",
	}
	for path, want := range cases {
		if got := keyForPath(base, path); got != want {
			t.Errorf("keyForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
