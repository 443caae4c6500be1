package entity

import "encoding/json"

// Source is a supporting document snippet behind a plain answer.
type Source struct {
	Content        string         `json:"content"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	RelevanceScore float64        `json:"relevance_score"`
}

// Citation is a structured reference backing a claim in a generated
// answer. A sparse record: any subset of fields may be populated.
type Citation struct {
	ID          string `json:"id,omitempty"`
	Customer    string `json:"customer,omitempty"`
	Title       string `json:"title,omitempty"`
	Segment     string `json:"segment,omitempty"`
	ChurnReason string `json:"churn_reason,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Metrics carries per-request measurements reported by the backend.
type Metrics struct {
	ResponseTimeMs  float64 `json:"response_time_ms"`
	TokensUsed      int     `json:"tokens_used"`
	RetrievalMethod string  `json:"retrieval_method,omitempty"`
	DocumentsFound  int     `json:"documents_found,omitempty"`
	AgentSteps      int     `json:"agent_steps,omitempty"`
}

// PlainAnswer is the response shape of /ask and /analyze-churn. The
// churn variant additionally fills the customer/risk/recommendation
// fields.
type PlainAnswer struct {
	Answer          string   `json:"answer"`
	CustomerID      string   `json:"customer_id,omitempty"`
	ChurnRiskScore  *float64 `json:"churn_risk_score,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Sources         []Source `json:"sources"`
	Metrics         Metrics  `json:"metrics"`
}

// MultiAgentAnswer is the response shape of /multi-agent-analyze.
type MultiAgentAnswer struct {
	Query             string     `json:"query"`
	QueryType         string     `json:"query_type,omitempty"`
	Response          string     `json:"response"`
	BackgroundContext string     `json:"background_context,omitempty"`
	KeyInsights       []string   `json:"key_insights"`
	Citations         []Citation `json:"citations"`
	StyleNotes        []string   `json:"style_notes"`
	ConfidenceScore   float64    `json:"confidence_score"`
	ProcessingStages  []string   `json:"processing_stages"`
	TotalSources      int        `json:"total_sources"`
	Errors            []string   `json:"errors"`
}

// Answer is the tagged union of the two response shapes. The shape is
// decided once, during deserialization: a body carrying BOTH
// confidence_score and processing_stages is a multi-agent answer,
// anything else is plain. Exactly one of the two pointers is set.
type Answer struct {
	Plain      *PlainAnswer
	MultiAgent *MultiAgentAnswer
}

func (a *Answer) IsMultiAgent() bool {
	return a.MultiAgent != nil
}

// Text returns the generated answer text regardless of shape.
func (a *Answer) Text() string {
	if a.MultiAgent != nil {
		return a.MultiAgent.Response
	}
	if a.Plain != nil {
		return a.Plain.Answer
	}
	return ""
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	_, hasConfidence := probe["confidence_score"]
	_, hasStages := probe["processing_stages"]

	if hasConfidence && hasStages {
		var ma MultiAgentAnswer
		if err := json.Unmarshal(data, &ma); err != nil {
			return err
		}
		*a = Answer{MultiAgent: &ma}
		return nil
	}

	var pa PlainAnswer
	if err := json.Unmarshal(data, &pa); err != nil {
		return err
	}
	*a = Answer{Plain: &pa}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.MultiAgent != nil {
		return json.Marshal(a.MultiAgent)
	}
	return json.Marshal(a.Plain)
}
