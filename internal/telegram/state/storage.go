package state

import (
	"strconv"
	"sync"
	"time"

	"github.com/futig/churn-console/internal/usecase/console"
	gocache "github.com/patrickmn/go-cache"
)

// Session holds per-chat console state. The mutex serializes submits so
// a chat never has more than one request in flight.
type Session struct {
	ChatID int64

	mu    sync.Mutex
	state console.State
}

// WithLock runs fn with exclusive access to the session state.
func (s *Session) WithLock(fn func(st *console.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() console.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Store keeps chat sessions with a sliding TTL.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a session store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

// GetOrCreate returns the session for the chat, creating a fresh one on
// first contact. Reports whether the session was just created.
func (s *Store) GetOrCreate(chatID int64) (*Session, bool) {
	key := strconv.FormatInt(chatID, 10)

	if v, ok := s.cache.Get(key); ok {
		sess := v.(*Session)
		s.cache.SetDefault(key, sess)
		return sess, false
	}

	sess := &Session{
		ChatID: chatID,
		state:  console.NewState(),
	}
	s.cache.SetDefault(key, sess)
	return sess, true
}
