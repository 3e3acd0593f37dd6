package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/logger"
)

const (
	// KeyItems holds the JSON array of every agenda item.
	KeyItems = "agenda-items"
	// KeyDarkMode holds the dark-mode display preference as a JSON boolean.
	KeyDarkMode = "dark-mode"
	// KeyViewState holds the last navigator anchor, view and filter.
	KeyViewState = "view-state"
	// KeyCorrupt receives an unreadable KeyItems value when recovery is on.
	KeyCorrupt = KeyItems + ".corrupt"
)

var (
	// ErrCorrupt is returned when the stored item list cannot be decoded.
	ErrCorrupt = errors.New("store: stored agenda items are corrupt")
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("store: item not found")
)

// KV is the subset of diskv the store needs.
type KV interface {
	Has(key string) bool
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
}

// Options tunes Open.
type Options struct {
	// RecoverCorrupt moves an undecodable item list aside and starts empty
	// instead of failing.
	RecoverCorrupt bool
	Logger         *zap.Logger
	// BasePath is the directory backing kv, needed for Watch.
	BasePath string
}

// NewDiskv returns a flat diskv store rooted at basePath: every key is one
// file directly under it. Reads are uncached because other agenda processes
// write the same files.
func NewDiskv(basePath string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 0,
	})
}

// Load opens the store described by cfg, loading the config from disk and
// environment when cfg is nil.
func Load(ctx context.Context, cfg Config, log *zap.Logger) (*Events, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	return Open(ctx, NewDiskv(basePath), Options{
		RecoverCorrupt: cfg.RecoverCorrupt(),
		Logger:         log,
		BasePath:       basePath,
	})
}

// Events is the ordered in-memory item collection. Every successful mutation
// writes the whole collection back to KeyItems. Events is not safe for
// concurrent use; callers serialise access.
type Events struct {
	kv       KV
	items    []item.Item
	log      *zap.Logger
	basePath string
	recover  bool
}

// Open rehydrates the collection from kv. A missing KeyItems yields an empty
// collection.
func Open(ctx context.Context, kv KV, opts Options) (*Events, error) {
	e := &Events{
		kv:       kv,
		log:      logger.OrNop(opts.Logger),
		basePath: opts.BasePath,
		recover:  opts.RecoverCorrupt,
	}
	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload replaces the in-memory collection with what is on disk.
func (e *Events) Reload(_ context.Context) error {
	items, err := e.read()
	if err == nil {
		e.items = items
		e.log.Debug("agenda items loaded", zap.Int("count", len(items)))
		return nil
	}
	if !errors.Is(err, ErrCorrupt) || !e.recover {
		return err
	}

	raw, rerr := e.kv.Read(KeyItems)
	if rerr != nil {
		return fmt.Errorf("store: read corrupt items: %w", rerr)
	}
	if werr := e.kv.Write(KeyCorrupt, raw); werr != nil {
		return fmt.Errorf("store: preserve corrupt items: %w", werr)
	}
	e.log.Warn("agenda items were corrupt, starting empty",
		zap.Error(err),
		zap.String("preserved_as", KeyCorrupt))
	e.items = nil
	return e.write(nil)
}

func (e *Events) read() ([]item.Item, error) {
	if !e.kv.Has(KeyItems) {
		return nil, nil
	}
	val, err := e.kv.Read(KeyItems)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", KeyItems, err)
	}
	var items []item.Item
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return items, nil
}

func (e *Events) write(items []item.Item) error {
	if items == nil {
		items = []item.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := e.kv.Write(KeyItems, data); err != nil {
		return fmt.Errorf("store: write %s: %w", KeyItems, err)
	}
	return nil
}

// commit persists next and, only if that succeeds, makes it current.
func (e *Events) commit(next []item.Item) error {
	if err := e.write(next); err != nil {
		return err
	}
	e.items = next
	e.log.Debug("agenda items saved", zap.Int("count", len(next)))
	return nil
}

// All returns a copy of the ordered collection.
func (e *Events) All() []item.Item {
	out := make([]item.Item, len(e.items))
	copy(out, e.items)
	return out
}

// Len returns the number of stored items.
func (e *Events) Len() int {
	return len(e.items)
}

// Find returns the item with the given id.
func (e *Events) Find(id string) (item.Item, bool) {
	if i := e.index(id); i >= 0 {
		return e.items[i], true
	}
	return item.Item{}, false
}

func (e *Events) index(id string) int {
	for i := range e.items {
		if e.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Append adds it to the end of the collection.
func (e *Events) Append(it item.Item) error {
	next := make([]item.Item, len(e.items), len(e.items)+1)
	copy(next, e.items)
	return e.commit(append(next, it))
}

// Replace swaps the stored item sharing it.ID.
func (e *Events) Replace(it item.Item) error {
	i := e.index(it.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, it.ID)
	}
	next := e.All()
	next[i] = it
	return e.commit(next)
}

// Remove deletes the item with the given id.
func (e *Events) Remove(id string) error {
	i := e.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make([]item.Item, 0, len(e.items)-1)
	next = append(next, e.items[:i]...)
	next = append(next, e.items[i+1:]...)
	return e.commit(next)
}

// BasePath is the directory behind the store, empty for non-disk stores.
func (e *Events) BasePath() string {
	return e.basePath
}
