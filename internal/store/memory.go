// internal/store/memory.go
//
// In-memory session store for rounds served over HTTP.
//
// Characteristics:
//   - Stores *game.Game values keyed by their ID.
//   - Concurrency-safe via RWMutex.
//   - State is lost when the process restarts.
//   - Rounds untouched for longer than the TTL are evicted on Save.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/fibble/internal/game"
)

// ErrNotFound is returned by Get for unknown or evicted IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or refreshes a round.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a round by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Len reports how many rounds are held.
	Len() int
}

type entry struct {
	g    *game.Game
	seen time.Time
}

type memory struct {
	mu    sync.RWMutex
	games map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs an in-memory Store. ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{games: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (m *memory) Save(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.games[g.ID()] = entry{g: g, seen: now}
	if m.ttl > 0 {
		for id, e := range m.games {
			if now.Sub(e.seen) > m.ttl {
				delete(m.games, id)
			}
		}
	}
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok || (m.ttl > 0 && m.now().Sub(e.seen) > m.ttl) {
		return nil, ErrNotFound
	}
	return e.g, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
