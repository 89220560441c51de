package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-api/internal/domain"
)

func newSession(owner string, createdAt time.Time) *domain.Session {
	return &domain.Session{
		ID:        uuid.New(),
		OwnerID:   owner,
		Domain:    "Engineering",
		Role:      "Backend Engineer",
		CreatedAt: createdAt,
	}
}

func TestSessionStore_PutGetDelete(t *testing.T) {
	s := NewSessionStore()
	sess := newSession("alice", time.Now())

	s.Put(sess)

	got, ok := s.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)
	assert.True(t, s.Has(sess.ID))

	s.Delete(sess.ID)
	_, ok = s.Get(sess.ID)
	assert.False(t, ok)
	assert.Empty(t, s.ListByOwner("alice"))
}

func TestSessionStore_ListByOwner(t *testing.T) {
	s := NewSessionStore()
	first := newSession("alice", time.Now())
	second := newSession("alice", time.Now())
	other := newSession("bob", time.Now())
	s.Put(first)
	s.Put(second)
	s.Put(other)

	owned := s.ListByOwner("alice")

	require.Len(t, owned, 2)
	assert.Equal(t, first.ID, owned[0].ID)
	assert.Equal(t, second.ID, owned[1].ID)
	assert.Len(t, s.ListByOwner("bob"), 1)
	assert.Empty(t, s.ListByOwner("carol"))
}

func TestSessionStore_ReapOldSessions(t *testing.T) {
	s := NewSessionStore()
	now := time.Now()

	stale := newSession("alice", now.Add(-25*time.Hour))
	fresh := newSession("alice", now.Add(-1*time.Hour))
	s.Put(stale)
	s.Put(fresh)

	reaped := s.Reap(now, 24*time.Hour, time.Hour)

	assert.Equal(t, 1, reaped)
	assert.False(t, s.Has(stale.ID))
	assert.True(t, s.Has(fresh.ID))
	assert.Len(t, s.ListByOwner("alice"), 1)
}

func TestSessionStore_ReapEndedSessions(t *testing.T) {
	s := NewSessionStore()
	now := time.Now()

	longDone := newSession("alice", now.Add(-2*time.Hour))
	endedAt := now.Add(-61 * time.Minute)
	longDone.EndedAt = &endedAt

	justDone := newSession("alice", now.Add(-2*time.Hour))
	recentEnd := now.Add(-30 * time.Minute)
	justDone.EndedAt = &recentEnd

	s.Put(longDone)
	s.Put(justDone)

	reaped := s.Reap(now, 24*time.Hour, time.Hour)

	assert.Equal(t, 1, reaped)
	assert.False(t, s.Has(longDone.ID))
	assert.True(t, s.Has(justDone.ID))
}

func TestSessionStore_ReapEmpty(t *testing.T) {
	s := NewSessionStore()
	assert.Equal(t, 0, s.Reap(time.Now(), 24*time.Hour, time.Hour))
}

// EndedAt is written under the session lock while the reaper scans; run with
// -race to verify the two never touch it unsynchronized.
func TestSessionStore_ReapConcurrentWithEndStamp(t *testing.T) {
	s := NewSessionStore()
	now := time.Now()

	sessions := make([]*domain.Session, 0, 8)
	for i := 0; i < 8; i++ {
		sess := newSession("alice", now)
		sessions = append(sessions, sess)
		s.Put(sess)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, sess := range sessions {
			sess.Lock()
			endedAt := time.Now()
			sess.EndedAt = &endedAt
			sess.Unlock()
		}
	}()

	for i := 0; i < 100; i++ {
		s.Reap(now, 24*time.Hour, time.Hour)
	}
	<-done

	// Nothing ended long enough ago to be collected.
	assert.Equal(t, 8, s.Len())
}
