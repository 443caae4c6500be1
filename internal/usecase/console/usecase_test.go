package console

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/churn-console/internal/entity"
	pkghttp "github.com/futig/churn-console/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordedCall captures one backend invocation for assertions.
type recordedCall struct {
	op         string
	question   string
	retriever  entity.RetrieverKind
	customerID string
}

// fakeBackend records calls and serves configured results.
type fakeBackend struct {
	calls     []recordedCall
	answer    *entity.Answer
	err       error
	healthErr error
}

func (f *fakeBackend) Health(ctx context.Context) (*entity.HealthStatus, error) {
	f.calls = append(f.calls, recordedCall{op: "health"})
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &entity.HealthStatus{Status: "healthy"}, nil
}

func (f *fakeBackend) Ask(ctx context.Context, question string, retriever entity.RetrieverKind) (*entity.Answer, error) {
	f.calls = append(f.calls, recordedCall{op: "ask", question: question, retriever: retriever})
	return f.answer, f.err
}

func (f *fakeBackend) AnalyzeChurn(ctx context.Context, query, customerID string) (*entity.Answer, error) {
	f.calls = append(f.calls, recordedCall{op: "analyze-churn", question: query, customerID: customerID})
	return f.answer, f.err
}

func (f *fakeBackend) MultiAgentAnalyze(ctx context.Context, query string) (*entity.Answer, error) {
	f.calls = append(f.calls, recordedCall{op: "multi-agent", question: query})
	return f.answer, f.err
}

func (f *fakeBackend) EvaluationResults(ctx context.Context) (*entity.EvaluationReport, error) {
	f.calls = append(f.calls, recordedCall{op: "evaluation"})
	return &entity.EvaluationReport{}, nil
}

func plainAnswer(text string) *entity.Answer {
	return &entity.Answer{Plain: &entity.PlainAnswer{Answer: text}}
}

func newTestController(backend *fakeBackend) *Controller {
	return NewController(backend, zap.NewNop())
}

func onlineState() State {
	st := NewState()
	st.Backend = entity.BackendOnline
	return st
}

func TestSubmit_PlainRAGDispatch(t *testing.T) {
	backend := &fakeBackend{answer: plainAnswer("Pricing is the top churn driver.")}
	c := newTestController(backend)

	st := onlineState()
	c.SetQuery(&st, "Why do customers churn?")
	require.NoError(t, c.SetRetriever(&st, entity.RetrieverNaive))

	require.NoError(t, c.Submit(context.Background(), &st))

	require.Len(t, backend.calls, 1)
	assert.Equal(t, "ask", backend.calls[0].op)
	assert.Equal(t, "Why do customers churn?", backend.calls[0].question)
	assert.Equal(t, entity.RetrieverNaive, backend.calls[0].retriever)

	assert.Equal(t, PhaseSuccess, st.Phase)
	assert.Equal(t, entity.BackendOnline, st.Backend)
	require.NotNil(t, st.Answer)
	assert.Equal(t, "Pricing is the top churn driver.", st.Answer.Text())
	assert.Empty(t, st.ErrorMessage)
}

func TestSubmit_SingleAgentDispatch(t *testing.T) {
	backend := &fakeBackend{answer: plainAnswer("High risk.")}
	c := newTestController(backend)

	st := onlineState()
	c.SetQuery(&st, "Assess this account")
	c.SetCustomerID(&st, "  CUST-7  ")
	require.NoError(t, c.SelectMode(&st, entity.ModeSingleAgent))

	require.NoError(t, c.Submit(context.Background(), &st))

	require.Len(t, backend.calls, 1)
	assert.Equal(t, "analyze-churn", backend.calls[0].op)
	assert.Equal(t, "CUST-7", backend.calls[0].customerID)
}

func TestSubmit_MultiAgentWinsOverSingleAgent(t *testing.T) {
	backend := &fakeBackend{answer: plainAnswer("ok")}
	c := newTestController(backend)

	st := onlineState()
	c.SetQuery(&st, "q")
	require.NoError(t, c.SelectMode(&st, entity.ModeSingleAgent))
	require.NoError(t, c.SelectMode(&st, entity.ModeMultiAgent))

	require.NoError(t, c.Submit(context.Background(), &st))

	require.Len(t, backend.calls, 1)
	assert.Equal(t, "multi-agent", backend.calls[0].op)
}

// Switching back and forth always leaves exactly one active mode.
func TestSelectMode_MutualExclusion(t *testing.T) {
	c := newTestController(&fakeBackend{})
	st := NewState()

	sequence := []entity.Mode{
		entity.ModeSingleAgent,
		entity.ModeMultiAgent,
		entity.ModeSingleAgent,
		entity.ModePlainRAG,
		entity.ModeMultiAgent,
	}
	for _, m := range sequence {
		require.NoError(t, c.SelectMode(&st, m))
		assert.Equal(t, m, st.Mode)
	}

	assert.Error(t, c.SelectMode(&st, entity.Mode("bogus")))
	assert.Equal(t, entity.ModeMultiAgent, st.Mode)
}

func TestSubmit_Guards(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(c *Controller, st *State)
		wantErr error
	}{
		{
			name: "empty query",
			prepare: func(c *Controller, st *State) {
				c.SetQuery(st, "   ")
			},
			wantErr: entity.ErrEmptyQuery,
		},
		{
			name: "backend offline",
			prepare: func(c *Controller, st *State) {
				c.SetQuery(st, "q")
				st.Backend = entity.BackendOffline
			},
			wantErr: entity.ErrBackendOffline,
		},
		{
			name: "request in flight",
			prepare: func(c *Controller, st *State) {
				c.SetQuery(st, "q")
				st.Phase = PhaseSubmitting
			},
			wantErr: entity.ErrRequestInFlight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{answer: plainAnswer("ok")}
			c := newTestController(backend)

			st := onlineState()
			tt.prepare(c, &st)
			before := st

			err := c.Submit(context.Background(), &st)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, backend.calls, "guarded submit must not reach the backend")
			assert.Equal(t, before, st, "guarded submit must leave the state untouched")
		})
	}
}

func TestSubmit_BackendErrorFlipsOffline(t *testing.T) {
	backend := &fakeBackend{err: &pkghttp.HTTPError{StatusCode: 422, Status: "Unprocessable Entity", Message: "field required"}}
	c := newTestController(backend)

	st := onlineState()
	c.SetQuery(&st, "q")

	require.NoError(t, c.Submit(context.Background(), &st))

	assert.Equal(t, PhaseError, st.Phase)
	assert.Equal(t, entity.BackendOffline, st.Backend)
	assert.Nil(t, st.Answer)
	assert.Contains(t, st.ErrorMessage, "422")
	assert.Contains(t, st.ErrorMessage, "field required")
}

func TestSubmit_SecondAnswerReplacesFirst(t *testing.T) {
	backend := &fakeBackend{answer: plainAnswer("first")}
	c := newTestController(backend)

	st := onlineState()
	c.SetQuery(&st, "q1")
	require.NoError(t, c.Submit(context.Background(), &st))
	require.Equal(t, "first", st.Answer.Text())

	backend.answer = plainAnswer("second")
	c.SetQuery(&st, "q2")
	require.NoError(t, c.Submit(context.Background(), &st))

	assert.Equal(t, "second", st.Answer.Text())
	assert.Equal(t, PhaseSuccess, st.Phase)
}

func TestSubmit_ErrorClearsPreviousAnswer(t *testing.T) {
	backend := &fakeBackend{answer: plainAnswer("first")}
	c := newTestController(backend)

	st := onlineState()
	c.SetQuery(&st, "q1")
	require.NoError(t, c.Submit(context.Background(), &st))
	require.NotNil(t, st.Answer)

	backend.err = &pkghttp.NetworkError{Err: errors.New("connection refused")}
	st.Backend = entity.BackendOnline
	c.SetQuery(&st, "q2")
	require.NoError(t, c.Submit(context.Background(), &st))

	assert.Nil(t, st.Answer)
	assert.Equal(t, PhaseError, st.Phase)
}

func TestProbe(t *testing.T) {
	t.Run("healthy backend goes online", func(t *testing.T) {
		c := newTestController(&fakeBackend{})
		st := NewState()
		require.Equal(t, entity.BackendChecking, st.Backend)

		c.Probe(context.Background(), &st)
		assert.Equal(t, entity.BackendOnline, st.Backend)
	})

	t.Run("unreachable backend goes offline", func(t *testing.T) {
		c := newTestController(&fakeBackend{healthErr: &pkghttp.NetworkError{Err: errors.New("refused")}})
		st := NewState()

		c.Probe(context.Background(), &st)
		assert.Equal(t, entity.BackendOffline, st.Backend)
	})
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantContains []string
	}{
		{
			name:         "503 readiness hint",
			err:          &pkghttp.HTTPError{StatusCode: 503, Status: "Service Unavailable", Message: "not ready"},
			wantContains: []string{"Qdrant", "OpenAI API key"},
		},
		{
			name:         "500 server error",
			err:          &pkghttp.HTTPError{StatusCode: 500, Status: "Internal Server Error", Message: "llm call failed"},
			wantContains: []string{"Server error", "llm call failed"},
		},
		{
			name:         "other http status",
			err:          &pkghttp.HTTPError{StatusCode: 404, Status: "Not Found", Message: "no such route"},
			wantContains: []string{"404", "Not Found", "no such route"},
		},
		{
			name:         "network failure",
			err:          &pkghttp.NetworkError{Err: errors.New("dial tcp: connection refused")},
			wantContains: []string{"Cannot reach the analysis backend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FormatError(tt.err)
			for _, want := range tt.wantContains {
				assert.Contains(t, msg, want)
			}
		})
	}
}
