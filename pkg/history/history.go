package history

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sw33tLie/medimind/pkg/predictor"
	"github.com/sw33tLie/medimind/pkg/storage"
)

// MaxEntries is the number of predictions kept.
const MaxEntries = 10

const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

var ErrNotFound = errors.New("history entry not found")

// Entry is a past prediction. It serializes flat: the result fields sit next
// to id, date and time.
type Entry struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
	predictor.Result
}

// KV is the durable storage the cache persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// Cache is the bounded, newest-first log of predictions. It is only mutated by
// Record and Clear, and every mutation is written through to the store.
type Cache struct {
	kv  KV
	log Logger

	mu      sync.RWMutex
	entries []Entry
}

func New(kv KV, log Logger) *Cache {
	if log == nil {
		log = nopLogger{}
	}
	return &Cache{kv: kv, log: log}
}

// LoadFromStorage replaces the in-memory history with the persisted one.
// A missing, unreadable or malformed value yields an empty history.
func (c *Cache) LoadFromStorage(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil

	raw, ok, err := c.kv.Get(ctx, storage.KeyPredictionHistory)
	if err != nil {
		c.log.Debugf("Could not read stored history: %v", err)
		return
	}
	if !ok {
		return
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		c.log.Debugf("Discarding malformed stored history: %v", err)
		return
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	c.entries = entries
}

// Record wraps result into an entry stamped at now, puts it first, drops
// anything past MaxEntries and persists the whole list.
func (c *Cache) Record(ctx context.Context, result predictor.Result, now time.Time) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := now.UnixMilli()
	if len(c.entries) > 0 && id <= c.entries[0].ID {
		id = c.entries[0].ID + 1
	}
	entry := Entry{
		ID:     id,
		Date:   now.Format(dateLayout),
		Time:   now.Format(timeLayout),
		Result: result,
	}

	updated := make([]Entry, 0, MaxEntries)
	updated = append(updated, entry)
	updated = append(updated, c.entries...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}
	c.entries = updated

	raw, err := json.Marshal(updated)
	if err != nil {
		return entry, err
	}
	return entry, c.kv.Set(ctx, storage.KeyPredictionHistory, string(raw))
}

// Clear drops every entry and removes the persisted value.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	return c.kv.Delete(ctx, storage.KeyPredictionHistory)
}

// Entries returns a copy of the history, newest first.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Get(id int64) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// At returns the entry at position i, 0 being the newest.
func (c *Cache) At(i int) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.entries) {
		return Entry{}, ErrNotFound
	}
	return c.entries[i], nil
}
