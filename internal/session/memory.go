package session

import (
	"context"
	"sync"

	"github.com/ilhamrafi44/ayp/internal/models"
)

// MemoryStore keeps the session in process memory. Used for --ephemeral
// runs and in tests
type MemoryStore struct {
	mu   sync.Mutex
	sess *Session
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the held session, or nil when there is none
func (m *MemoryStore) Load(_ context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil || !m.sess.Valid() {
		return nil, nil
	}
	cp := *m.sess
	return &cp, nil
}

// Save replaces the held session. A half pair is rejected with ErrInvalidSession
func (m *MemoryStore) Save(_ context.Context, token string, user models.User) error {
	sess := Session{Token: token, User: user}
	if !sess.Valid() {
		return ErrInvalidSession
	}
	m.mu.Lock()
	m.sess = &sess
	m.mu.Unlock()
	return nil
}

// Clear drops the held session
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.sess = nil
	m.mu.Unlock()
	return nil
}
