package testhelpers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySessionStore is an in-process session store for tests that do not
// want a Redis dependency.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

// NewMemorySessionStore creates a new MemorySessionStore instance
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]uuid.UUID)}
}

func (s *MemorySessionStore) Save(_ context.Context, sessionID string, userID uuid.UUID, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *MemorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are live.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
