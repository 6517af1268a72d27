package store

import (
	"context"
	"sync"
	"time"

	"insightsynth/internal/model"
)

// Memory is the default session store: a TTL map guarded by a mutex. Expired
// sessions are dropped lazily on access and swept on every Put.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	session   *model.Session
	expiresAt time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *Memory) Put(_ context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, id)
		}
	}

	m.sessions[session.ID] = memoryEntry{
		session:   session,
		expiresAt: now.Add(m.ttl),
	}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || m.now().After(e.expiresAt) {
		return nil, ErrNotFound
	}
	return e.session, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
