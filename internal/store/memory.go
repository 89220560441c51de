// Package store keeps interview sessions in process memory. There is no
// durable backing on purpose: sessions live at most a day and die with the
// process.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockmate/interview-api/internal/domain"
)

// SessionStore is an in-memory session registry indexed by session id and by
// owner. Raw maps never leave the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
	byOwner  map[string][]uuid.UUID
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*domain.Session),
		byOwner:  make(map[string][]uuid.UUID),
	}
}

// Put registers a session and indexes it under its owner.
func (s *SessionStore) Put(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.byOwner[sess.OwnerID] = append(s.byOwner[sess.OwnerID], sess.ID)
}

// Get returns the session for an id.
func (s *SessionStore) Get(id uuid.UUID) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Has reports whether the id is still registered. Used to detect sessions
// reaped while a model call was in flight.
func (s *SessionStore) Has(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Delete removes a session and drops it from the owner index.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

func (s *SessionStore) deleteLocked(id uuid.UUID) {
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	delete(s.sessions, id)

	owned := s.byOwner[sess.OwnerID]
	for i, ownedID := range owned {
		if ownedID == id {
			s.byOwner[sess.OwnerID] = append(owned[:i], owned[i+1:]...)
			break
		}
	}
	if len(s.byOwner[sess.OwnerID]) == 0 {
		delete(s.byOwner, sess.OwnerID)
	}
}

// ListByOwner returns the owner's sessions in creation order.
func (s *SessionStore) ListByOwner(ownerID string) []*domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byOwner[ownerID]
	sessions := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		if sess, ok := s.sessions[id]; ok {
			sessions = append(sessions, sess)
		}
	}
	return sessions
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Reap removes sessions older than maxAge and sessions that ended more than
// endedGrace ago. Returns the number removed.
//
// EndedAt is guarded by the session lock, not the store lock, so the scan
// runs in phases and never holds both at once: chat's post-call path holds
// the session lock while it re-checks store membership, and taking the locks
// in the opposite order here would deadlock.
func (s *SessionStore) Reap(now time.Time, maxAge, endedGrace time.Duration) int {
	s.mu.RLock()
	candidates := make([]*domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		candidates = append(candidates, sess)
	}
	s.mu.RUnlock()

	var expired []uuid.UUID
	for _, sess := range candidates {
		sess.Lock()
		dead := now.Sub(sess.CreatedAt) > maxAge ||
			(sess.EndedAt != nil && now.Sub(*sess.EndedAt) > endedGrace)
		sess.Unlock()
		if dead {
			expired = append(expired, sess.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for _, id := range expired {
		if _, ok := s.sessions[id]; ok {
			s.deleteLocked(id)
			removed++
		}
	}
	return removed
}
