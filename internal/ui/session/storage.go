package session

import (
	"sync"
	"time"

	"github.com/futig/churn-console/internal/usecase/console"
	gocache "github.com/patrickmn/go-cache"
)

// Session binds one browser to one console state. The mutex serializes
// all work on the state: a second submit while one is in flight waits
// its turn, so the state never sees concurrent requests.
type Session struct {
	ID string

	mu    sync.Mutex
	state console.State
}

// WithLock runs fn with exclusive access to the session state.
func (s *Session) WithLock(fn func(*console.State)) {
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

// Store keeps sessions in memory with a TTL. Nothing is persisted:
// an expired session simply starts over at mount state.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (st *Store) Get(id string) (*Session, bool) {
	item, found := st.cache.Get(id)
	if !found {
		return nil, false
	}
	sess, ok := item.(*Session)
	return sess, ok
}

// Put saves the session and refreshes its TTL.
func (st *Store) Put(sess *Session) {
	st.cache.SetDefault(sess.ID, sess)
}
