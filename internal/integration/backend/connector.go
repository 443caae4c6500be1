package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/churn-console/internal/config"
	"github.com/futig/churn-console/internal/entity"
	"github.com/futig/churn-console/internal/integration/common"
	pkghttp "github.com/futig/churn-console/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector is the typed client for the churn analysis backend. Every
// operation is a single HTTP attempt; failure normalization happens in
// pkg/http.
type Connector struct {
	config    config.BackendConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.BackendConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Health probes the backend liveness endpoint.
func (c *Connector) Health(ctx context.Context) (*entity.HealthStatus, error) {
	var resp entity.HealthStatus
	err := c.connector.DoRequest(ctx, http.MethodGet, c.config.HealthEndpoint, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return &resp, nil
}

// Ask runs retrieval-augmented question answering with the given
// retriever strategy.
func (c *Connector) Ask(ctx context.Context, question string, retriever entity.RetrieverKind) (*entity.Answer, error) {
	ctxzap.Debug(ctx, "asking backend",
		zap.String("retriever", string(retriever)),
		zap.Int("question_length", len(question)),
	)

	req := &entity.AskRequest{
		Question:          question,
		RetrieverType:     retriever,
		MaxResponseLength: c.config.MaxResponseLength,
	}

	var resp entity.Answer
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.AskEndpoint, req, &resp); err != nil {
		ctxzap.Error(ctx, "ask request failed", zap.Error(err))
		return nil, err
	}

	ctxzap.Debug(ctx, "answer received",
		zap.Bool("multi_agent", resp.IsMultiAgent()),
		zap.Int("answer_length", len(resp.Text())),
	)

	return &resp, nil
}

// AnalyzeChurn runs the single-agent churn analysis, optionally scoped
// to one customer.
func (c *Connector) AnalyzeChurn(ctx context.Context, query, customerID string) (*entity.Answer, error) {
	ctxzap.Debug(ctx, "requesting churn analysis",
		zap.String("customer_id", customerID),
	)

	req := &entity.ChurnAnalysisRequest{
		Query:                  query,
		CustomerID:             customerID,
		IncludeRecommendations: true,
		MaxResponseLength:      c.config.MaxResponseLength,
	}

	var resp entity.Answer
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChurnEndpoint, req, &resp); err != nil {
		ctxzap.Error(ctx, "churn analysis request failed", zap.Error(err))
		return nil, err
	}

	return &resp, nil
}

// MultiAgentAnalyze runs the research+writing agent pipeline.
func (c *Connector) MultiAgentAnalyze(ctx context.Context, query string) (*entity.Answer, error) {
	ctxzap.Debug(ctx, "requesting multi-agent analysis")

	req := &entity.MultiAgentRequest{
		Query:             query,
		IncludeBackground: true,
		IncludeCitations:  true,
	}

	var resp entity.Answer
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.MultiAgentEndpoint, req, &resp); err != nil {
		ctxzap.Error(ctx, "multi-agent request failed", zap.Error(err))
		return nil, err
	}

	if resp.MultiAgent != nil && len(resp.MultiAgent.Errors) > 0 {
		ctxzap.Warn(ctx, "multi-agent pipeline reported stage errors",
			zap.Strings("errors", resp.MultiAgent.Errors),
		)
	}

	return &resp, nil
}

// EvaluationResults fetches the RAGAS scores for every retrieval method.
func (c *Connector) EvaluationResults(ctx context.Context) (*entity.EvaluationReport, error) {
	var resp entity.EvaluationReport
	err := c.connector.DoRequest(ctx, http.MethodGet, c.config.EvaluationEndpoint, nil, &resp)
	if err != nil {
		ctxzap.Error(ctx, "failed to fetch evaluation results", zap.Error(err))
		return nil, err
	}

	ctxzap.Debug(ctx, "evaluation results received",
		zap.Int("method_count", len(resp.Results)),
	)

	return &resp, nil
}
