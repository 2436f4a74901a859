package wizard

import (
	"context"
	"sync"
	"time"
)

// DraftStore persists wizard drafts between requests. Drafts are small and
// short-lived; implementations may expire them after a TTL.
type DraftStore interface {
	Get(ctx context.Context, id string) (*Draft, error)
	Put(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	draft     Draft
	expiresAt time.Time
}

// MemoryStore is a map-backed DraftStore for tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryStore creates an in-memory store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return nil, ErrDraftNotFound
	}
	d := e.draft
	return &d, nil
}

func (s *MemoryStore) Put(_ context.Context, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{draft: *d}
	if s.ttl > 0 {
		e.expiresAt = time.Now().Add(s.ttl)
	}
	s.entries[d.ID] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
