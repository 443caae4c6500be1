package console

import (
	"context"

	"github.com/futig/churn-console/internal/entity"
)

// BackendConnector is the typed client for the churn analysis backend.
// Implemented by integration/backend.Connector and its mock.
type BackendConnector interface {
	Health(ctx context.Context) (*entity.HealthStatus, error)
	Ask(ctx context.Context, question string, retriever entity.RetrieverKind) (*entity.Answer, error)
	AnalyzeChurn(ctx context.Context, query, customerID string) (*entity.Answer, error)
	MultiAgentAnalyze(ctx context.Context, query string) (*entity.Answer, error)
	EvaluationResults(ctx context.Context) (*entity.EvaluationReport, error)
}
