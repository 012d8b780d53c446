package cart

import (
	"context"
	"sync"
	"time"

	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
)

// Manager hands out one Store per session id. Stores are created on first
// use, rehydrated from the durable slot, and evicted from memory after the
// idle TTL; the slot itself survives eviction.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*managedStore
	storage Storage
	logg    *logger.Logger
	idleTTL time.Duration
	now     func() time.Time
}

type managedStore struct {
	store    *Store
	lastSeen time.Time
}

// NewManager builds a session manager over the given slot storage.
func NewManager(storage Storage, idleTTL time.Duration, logg *logger.Logger) *Manager {
	return &Manager{
		stores:  map[string]*managedStore{},
		storage: storage,
		logg:    logg,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Get returns the session's Store, creating and rehydrating it if needed.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.stores[sessionID]; ok {
		entry.lastSeen = m.now()
		return entry.store
	}

	store := NewStore(sessionID, m.storage, m.logg)
	store.Rehydrate(ctx)
	m.stores[sessionID] = &managedStore{store: store, lastSeen: m.now()}
	return store
}

// Dispose drops the in-memory store for a session. The durable slot is kept.
func (m *Manager) Dispose(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

// EvictIdle removes stores that have not been touched within the idle TTL
// and returns the evicted session ids so callers can drop related state.
func (m *Manager) EvictIdle() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.idleTTL <= 0 {
		return nil
	}
	cutoff := m.now().Add(-m.idleTTL)
	var evicted []string
	for id, entry := range m.stores {
		if entry.lastSeen.Before(cutoff) {
			delete(m.stores, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// Len reports the number of live in-memory stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
