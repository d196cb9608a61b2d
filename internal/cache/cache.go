// internal/cache/cache.go
//
// Persisted suggestion cache for the one expensive canonical query:
// the ranking of every allowed guess against the full secret list before
// any feedback exists.
//
// Entries are keyed by the cache format version, both list sizes and a
// BLAKE2b fingerprint of both lists. A stale, missing or unreadable cache
// is a miss; callers recompute and results never depend on the cache.

package cache

import (
	"context"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/fibble/internal/words"
)

// Version is bumped whenever the ranking rule or entry format changes.
const Version = 2

// Key identifies a cached scan.
type Key struct {
	Version      int
	SecretCount  int
	AllowedCount int
	Fingerprint  string
}

// Entry is one ranked guess.
type Entry struct {
	Guess       string  `json:"guess"`
	EntropyBits float64 `json:"entropyBits"`
}

// Store loads and saves ranked entries.
type Store interface {
	// Load returns the entries for key in rank order, or ok=false on a miss.
	Load(ctx context.Context, key Key) (entries []Entry, ok bool, err error)

	// Save replaces any entries stored under key.
	Save(ctx context.Context, key Key, entries []Entry) error
}

// KeyFor derives the cache key of a dictionary.
func KeyFor(d *words.Dictionary) Key {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	h.Write([]byte("allowed\n"))
	for _, w := range d.Allowed() {
		h.Write(w[:])
	}
	h.Write([]byte("\nsecrets\n"))
	for _, w := range d.Secrets() {
		h.Write(w[:])
	}
	s, a := d.Stats()
	return Key{
		Version:      Version,
		SecretCount:  s,
		AllowedCount: a,
		Fingerprint:  hex.EncodeToString(h.Sum(nil)),
	}
}

// memory is an in-process Store.
type memory struct {
	mu      sync.RWMutex
	entries map[Key][]Entry
}

// NewMemory constructs an in-memory Store.
func NewMemory() Store {
	return &memory{entries: make(map[Key][]Entry)}
}

func (m *memory) Load(_ context.Context, key Key) ([]Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]Entry(nil), e...), true, nil
}

func (m *memory) Save(_ context.Context, key Key, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]Entry(nil), entries...)
	return nil
}
