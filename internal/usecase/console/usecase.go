package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/churn-console/internal/entity"
	pkghttp "github.com/futig/churn-console/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Controller drives the console state machine. It owns no state itself;
// callers hold a State per session and pass it in, which keeps the
// transition rules in one place and the sessions free to live wherever
// the presentation layer keeps them.
type Controller struct {
	backend BackendConnector
	logger  *zap.Logger
}

func NewController(backend BackendConnector, logger *zap.Logger) *Controller {
	return &Controller{
		backend: backend,
		logger:  logger,
	}
}

// SetQuery replaces the query text.
func (c *Controller) SetQuery(s *State, query string) {
	s.Query = query
}

// SetCustomerID scopes the next single-agent analysis to one customer.
func (c *Controller) SetCustomerID(s *State, customerID string) {
	s.CustomerID = strings.TrimSpace(customerID)
}

// SelectMode activates a mode. Modes are mutually exclusive: activating
// multi-agent deactivates single-agent and vice versa, for any toggle
// sequence.
func (c *Controller) SelectMode(s *State, mode entity.Mode) error {
	if _, err := entity.ParseMode(string(mode)); err != nil {
		return err
	}
	s.Mode = mode
	return nil
}

// SetRetriever selects the retrieval strategy for plain-rag submits.
func (c *Controller) SetRetriever(s *State, kind entity.RetrieverKind) error {
	if _, err := entity.ParseRetrieverKind(string(kind)); err != nil {
		return err
	}
	s.Retriever = kind
	return nil
}

// Probe checks backend reachability once. Run at session mount; it must
// never block the first render, so callers invoke it from a goroutine.
func (c *Controller) Probe(ctx context.Context, s *State) {
	if _, err := c.backend.Health(ctx); err != nil {
		ctxzap.Warn(ctx, "backend health probe failed", zap.Error(err))
		s.Backend = entity.BackendOffline
		return
	}
	s.Backend = entity.BackendOnline
}

// Submit runs one analysis request for the current state.
//
// Guards (the submit is a no-op and the state stays untouched):
//   - empty or whitespace-only query
//   - backend known to be offline
//   - a request already in flight
//
// Dispatch is first-match-wins: multi-agent mode, then single-agent,
// then plain-rag with the selected retriever. The previous answer or
// error is cleared before the call; the outcome replaces it wholesale.
func (c *Controller) Submit(ctx context.Context, s *State) error {
	if s.Phase == PhaseSubmitting {
		return entity.ErrRequestInFlight
	}
	if strings.TrimSpace(s.Query) == "" {
		return entity.ErrEmptyQuery
	}
	if s.Backend == entity.BackendOffline {
		return entity.ErrBackendOffline
	}

	s.Phase = PhaseSubmitting
	s.Answer = nil
	s.ErrorMessage = ""

	ctxzap.Info(ctx, "submitting query",
		zap.String("mode", string(s.Mode)),
		zap.String("retriever", string(s.Retriever)),
		zap.Int("query_length", len(s.Query)),
	)

	var (
		answer *entity.Answer
		err    error
	)

	switch s.Mode {
	case entity.ModeMultiAgent:
		answer, err = c.backend.MultiAgentAnalyze(ctx, s.Query)
	case entity.ModeSingleAgent:
		answer, err = c.backend.AnalyzeChurn(ctx, s.Query, s.CustomerID)
	default:
		answer, err = c.backend.Ask(ctx, s.Query, s.Retriever)
	}

	if err != nil {
		// Any failure flips the backend to offline, including 4xx
		// application errors. Known imprecision, kept on purpose: the
		// badge treats every failure as unreachability.
		s.Phase = PhaseError
		s.ErrorMessage = FormatError(err)
		s.Backend = entity.BackendOffline
		ctxzap.Warn(ctx, "submit failed", zap.Error(err))
		return nil
	}

	s.Phase = PhaseSuccess
	s.Answer = answer
	s.Backend = entity.BackendOnline
	return nil
}

// FetchEvaluation loads the RAGAS evaluation report.
func (c *Controller) FetchEvaluation(ctx context.Context) (*entity.EvaluationReport, error) {
	return c.backend.EvaluationResults(ctx)
}

// FormatError turns a failed call into the user-facing message.
func FormatError(err error) string {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 503:
			return "The analysis service is not ready yet. Make sure Qdrant is running " +
				"and the OpenAI API key is configured, then try again."
		case 500:
			return fmt.Sprintf("Server error: %s", httpErr.Message)
		default:
			return fmt.Sprintf("(%d %s): %s", httpErr.StatusCode, httpErr.Status, httpErr.Message)
		}
	}

	return "Cannot reach the analysis backend. Check that the service is running and try again."
}
