package backend

import (
	"context"
	"time"

	"github.com/futig/churn-console/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned-data implementation for local development
// without a running backend.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Health(ctx context.Context) (*entity.HealthStatus, error) {
	return &entity.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "churn-analysis-backend (mock)",
	}, nil
}

func (m *MockConnector) Ask(ctx context.Context, question string, retriever entity.RetrieverKind) (*entity.Answer, error) {
	ctxzap.Info(ctx, "[MOCK] answering question",
		zap.String("retriever", string(retriever)),
	)

	return &entity.Answer{
		Plain: &entity.PlainAnswer{
			Answer: "Customers most often churn over unresolved support tickets and " +
				"pricing pressure from competitors. Enterprise accounts cite missing " +
				"integrations as a secondary driver.",
			Sources: []entity.Source{
				{
					Content:        "Ticket #4821: customer reported three unresolved escalations before cancelling.",
					Metadata:       map[string]any{"customer": "Acme Corp", "segment": "enterprise"},
					RelevanceScore: 0.92,
				},
				{
					Content:        "Exit survey: switched to a competitor offering usage-based pricing.",
					Metadata:       map[string]any{"customer": "Globex", "segment": "mid-market"},
					RelevanceScore: 0.87,
				},
			},
			Metrics: entity.Metrics{
				ResponseTimeMs:  412,
				TokensUsed:      640,
				RetrievalMethod: string(retriever),
				DocumentsFound:  2,
			},
		},
	}, nil
}

func (m *MockConnector) AnalyzeChurn(ctx context.Context, query, customerID string) (*entity.Answer, error) {
	ctxzap.Info(ctx, "[MOCK] analyzing churn",
		zap.String("customer_id", customerID),
	)

	risk := 0.73
	return &entity.Answer{
		Plain: &entity.PlainAnswer{
			Answer: "The account shows elevated churn risk driven by declining product " +
				"usage and a stalled renewal conversation.",
			CustomerID:     customerID,
			ChurnRiskScore: &risk,
			Recommendations: []string{
				"Schedule an executive business review within two weeks",
				"Offer a migration path to the usage-based plan",
			},
			Sources: []entity.Source{
				{
					Content:        "Usage dropped 40% quarter-over-quarter for this account.",
					Metadata:       map[string]any{"signal": "usage_decline"},
					RelevanceScore: 0.81,
				},
			},
			Metrics: entity.Metrics{
				ResponseTimeMs: 536,
				TokensUsed:     720,
				AgentSteps:     3,
			},
		},
	}, nil
}

func (m *MockConnector) MultiAgentAnalyze(ctx context.Context, query string) (*entity.Answer, error) {
	ctxzap.Info(ctx, "[MOCK] running multi-agent analysis")

	return &entity.Answer{
		MultiAgent: &entity.MultiAgentAnswer{
			Query:     query,
			QueryType: "churn_driver_analysis",
			Response: "Churn concentrates in the mid-market segment where support " +
				"responsiveness lags. Pricing is an amplifier, not a root cause: accounts " +
				"with healthy support histories absorb price increases without churning.",
			BackgroundContext: "Analysis covers 214 churned accounts across four quarters.",
			KeyInsights: []string{
				"Support latency is the strongest churn predictor",
				"Price sensitivity doubles once support trust erodes",
			},
			Citations: []entity.Citation{
				{Customer: "Initech", Segment: "mid-market", ChurnReason: "support latency"},
				{Title: "Q3 churn cohort review", URL: "https://wiki.internal/churn-q3"},
			},
			StyleNotes:       []string{"executive summary tone"},
			ConfidenceScore:  0.84,
			ProcessingStages: []string{"research", "synthesis", "writing"},
			TotalSources:     17,
			Errors:           []string{},
		},
	}, nil
}

func (m *MockConnector) EvaluationResults(ctx context.Context) (*entity.EvaluationReport, error) {
	ctxzap.Info(ctx, "[MOCK] returning evaluation results")

	return &entity.EvaluationReport{
		Results: []entity.EvaluationResult{
			{RetrievalMethod: "parent_document", Faithfulness: 0.91, AnswerRelevancy: 0.88, ContextRecall: 0.84, ContextPrecision: 0.79, AnswerCorrectness: 0.82, AnswerSimilarity: 0.90},
			{RetrievalMethod: "multi_query", Faithfulness: 0.89, AnswerRelevancy: 0.90, ContextRecall: 0.86, ContextPrecision: 0.74, AnswerCorrectness: 0.80, AnswerSimilarity: 0.88},
			{RetrievalMethod: "reranking", Faithfulness: 0.93, AnswerRelevancy: 0.91, ContextRecall: 0.82, ContextPrecision: 0.85, AnswerCorrectness: 0.84, AnswerSimilarity: 0.91},
			{RetrievalMethod: "naive", Faithfulness: 0.85, AnswerRelevancy: 0.83, ContextRecall: 0.78, ContextPrecision: 0.70, AnswerCorrectness: 0.75, AnswerSimilarity: 0.85},
			{RetrievalMethod: "contextual_compression", Faithfulness: 0.90, AnswerRelevancy: 0.87, ContextRecall: 0.80, ContextPrecision: 0.83, AnswerCorrectness: 0.81, AnswerSimilarity: 0.89},
		},
		MetricsInfo: map[string]string{
			"faithfulness":       "How grounded the answer is in the retrieved context",
			"answer_relevancy":   "How relevant the answer is to the question",
			"context_recall":     "How much of the needed context was retrieved",
			"context_precision":  "How much of the retrieved context was needed",
			"answer_correctness": "Agreement with the reference answer",
			"answer_similarity":  "Semantic similarity to the reference answer",
		},
		Note: "Mock scores for local development",
	}, nil
}
