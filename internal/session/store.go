package session

import (
	"sync"
	"time"
)

// Store keeps sessions in memory, keyed by session ID. Sessions do not
// survive a process restart.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	defaults func() Settings
	now      func() time.Time
}

// NewStore creates a store; defaults seeds the settings of new sessions.
func NewStore(defaults func() Settings) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		defaults: defaults,
		now:      time.Now,
	}
}

// Get returns an existing session and marks it as active.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		sess.touch(st.now())
	}
	return sess, ok
}

// GetOrCreate returns the session for id, creating it with default settings
// when missing.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	if !ok {
		sess = &Session{ID: id, settings: st.defaults().Clone()}
		st.sessions[id] = sess
	}
	st.mu.Unlock()

	sess.touch(st.now())
	return sess
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := st.now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
