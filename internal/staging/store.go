package staging

import (
	"sync"
	"time"
)

type session struct {
	buffer  *Buffer
	lastUse time.Time
}

// Store keys buffers by admin session so each browser session stages
// its own images, mirroring client-side selection state. Buffers are
// released on logout and swept once idle longer than the session TTL,
// so staged bytes never outlive the session that staged them.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration // 0 disables the idle sweep
	now      func() time.Time
}

// NewStore returns an empty session-to-buffer registry. ttl should
// match the session token lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Buffer returns the session's buffer, creating one on first use and
// marking the session live. Expired sessions are swept on the way in.
func (s *Store) Buffer(sessionID string) *Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{buffer: NewBuffer()}
		s.sessions[sessionID] = sess
	}
	sess.lastUse = now
	return sess.buffer
}

// Drop releases the session's buffer and forgets it. Called on logout
// so staged bytes do not outlive the session.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok {
		sess.buffer.Clear()
	}
}

// sweep releases every buffer idle longer than the TTL. Caller holds
// the lock.
func (s *Store) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUse) > s.ttl {
			sess.buffer.Clear()
			delete(s.sessions, id)
		}
	}
}
