package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session survives before the janitor
// removes it.
const DefaultTTL = 30 * time.Minute

// janitorInterval controls how often expired sessions are swept.
const janitorInterval = 1 * time.Minute

type entry struct {
	memory   *Memory
	lastSeen time.Time
}

// Store maps session IDs to their conversation memory. Memories are scoped
// strictly per session; the store never hands the same Memory to two
// different session IDs.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time // injectable for tests
}

// NewStore creates a session store with the given idle TTL (DefaultTTL if
// ttl <= 0) and starts the expiry janitor. Call Close to stop it.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		done:     make(chan struct{}),
		now:      time.Now,
	}
	go s.janitor()
	return s
}

// Get returns the memory for sessionID, creating it on first use, and
// refreshes the session's idle deadline. When sessionID is empty a new
// session is created; the returned ID identifies the session either way.
func (s *Store) Get(sessionID string) (string, *Memory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{memory: NewMemory()}
		s.sessions[sessionID] = e
	}
	e.lastSeen = s.now()
	return sessionID, e.memory
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the expiry janitor. The store remains usable afterwards,
// but idle sessions are no longer swept.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes sessions idle longer than the TTL.
func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
