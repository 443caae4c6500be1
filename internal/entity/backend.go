package entity

// Request/response contracts of the churn analysis backend.

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

type AskRequest struct {
	Question          string        `json:"question"`
	RetrieverType     RetrieverKind `json:"retriever_type"`
	MaxResponseLength int           `json:"max_response_length"`
}

type ChurnAnalysisRequest struct {
	Query                  string `json:"query"`
	CustomerID             string `json:"customer_id,omitempty"`
	IncludeRecommendations bool   `json:"include_recommendations"`
	MaxResponseLength      int    `json:"max_response_length"`
}

type MultiAgentRequest struct {
	Query             string `json:"query"`
	IncludeBackground bool   `json:"include_background"`
	IncludeCitations  bool   `json:"include_citations"`
}

// EvaluationResult holds RAGAS scores for one retrieval method.
type EvaluationResult struct {
	RetrievalMethod   string  `json:"retrieval_method"`
	Faithfulness      float64 `json:"faithfulness"`
	AnswerRelevancy   float64 `json:"answer_relevancy"`
	ContextRecall     float64 `json:"context_recall"`
	ContextPrecision  float64 `json:"context_precision"`
	AnswerCorrectness float64 `json:"answer_correctness"`
	AnswerSimilarity  float64 `json:"answer_similarity"`
}

type EvaluationReport struct {
	Results     []EvaluationResult `json:"results"`
	MetricsInfo map[string]string  `json:"metrics_info"`
	Note        string             `json:"note"`
}
