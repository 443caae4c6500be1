package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/churn-console/internal/entity"
	"github.com/futig/churn-console/internal/usecase/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStorePutGet(t *testing.T) {
	store := NewStore(time.Minute)

	sess := &Session{ID: "abc", state: console.NewState()}
	store.Put(sess)

	got, ok := store.Get("abc")
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestSessionWithLock(t *testing.T) {
	sess := &Session{ID: "abc", state: console.NewState()}

	sess.WithLock(func(st *console.State) {
		st.Query = "why churn"
		st.Backend = entity.BackendOnline
	})

	snap := sess.Snapshot()
	assert.Equal(t, "why churn", snap.Query)
	assert.Equal(t, entity.BackendOnline, snap.Backend)

	// Snapshot is a copy: mutating it must not leak back.
	snap.Query = "changed"
	assert.Equal(t, "why churn", sess.Snapshot().Query)
}

func TestManagerResolve(t *testing.T) {
	store := NewStore(time.Minute)
	controller := console.NewController(probeOnlyBackend{}, zap.NewNop())
	m := NewManager(store, controller, zap.NewNop())

	// First request mints a session and sets the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	first := m.Resolve(rec, req)
	require.NotNil(t, first)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "churn_console_session", cookies[0].Name)
	assert.Equal(t, first.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// Second request with the cookie resolves to the same session.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	second := m.Resolve(httptest.NewRecorder(), req2)
	assert.Same(t, first, second)
}

// probeOnlyBackend satisfies the connector interface for session tests.
type probeOnlyBackend struct{}

func (probeOnlyBackend) Health(ctx context.Context) (*entity.HealthStatus, error) {
	return &entity.HealthStatus{Status: "healthy"}, nil
}

func (probeOnlyBackend) Ask(ctx context.Context, question string, retriever entity.RetrieverKind) (*entity.Answer, error) {
	return nil, nil
}

func (probeOnlyBackend) AnalyzeChurn(ctx context.Context, query, customerID string) (*entity.Answer, error) {
	return nil, nil
}

func (probeOnlyBackend) MultiAgentAnalyze(ctx context.Context, query string) (*entity.Answer, error) {
	return nil, nil
}

func (probeOnlyBackend) EvaluationResults(ctx context.Context) (*entity.EvaluationReport, error) {
	return &entity.EvaluationReport{}, nil
}
