package session

import (
	"context"
	"net/http"
	"time"

	"github.com/futig/churn-console/internal/usecase/console"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const cookieName = "churn_console_session"

// Manager resolves the session for an incoming request, creating one
// (cookie + mount-time health probe) when none exists.
type Manager struct {
	store      *Store
	controller *console.Controller
	logger     *zap.Logger
}

func NewManager(store *Store, controller *console.Controller, logger *zap.Logger) *Manager {
	return &Manager{
		store:      store,
		controller: controller,
		logger:     logger,
	}
}

// Resolve returns the request's session, minting a new one when the
// cookie is absent or expired. New sessions start a background health
// probe; the first render never waits for it.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if sess, ok := m.store.Get(cookie.Value); ok {
			m.store.Put(sess)
			return sess
		}
	}

	sess := &Session{
		ID:    uuid.NewString(),
		state: console.NewState(),
	}
	m.store.Put(sess)

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	m.logger.Info("session created", zap.String("session_id", sess.ID))

	go m.probe(sess)

	return sess
}

// probe runs the mount-time health check for a fresh session.
func (m *Manager) probe(sess *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	ctx = ctxzap.ToContext(ctx, m.logger.With(zap.String("session_id", sess.ID)))

	sess.WithLock(func(st *console.State) {
		m.controller.Probe(ctx, st)
	})
	m.store.Put(sess)
}
