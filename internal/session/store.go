package session

import (
	"context"
	"sync"
	"time"
)

// Store persists sessions keyed by chat user id.
type Store interface {
	// Get returns the stored session, or an empty one when none exists.
	Get(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, userID int64, s *Session) error
	Delete(ctx context.Context, userID int64) error
}

type memoryItem struct {
	session Session
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Entries idle for longer
// than the TTL are dropped on access; a zero TTL keeps them forever.
type MemoryStore struct {
	mu    sync.Mutex
	items map[int64]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[int64]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[userID]
	if !ok {
		return &Session{}, nil
	}
	if m.ttl > 0 && m.now().After(it.expires) {
		delete(m.items, userID)
		return &Session{}, nil
	}
	s := it.session
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, userID int64, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[userID] = memoryItem{session: *s, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, userID)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
