package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/churn-console/internal/config"
	"github.com/futig/churn-console/internal/entity"
	pkghttp "github.com/futig/churn-console/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(srvURL string) *Connector {
	cfg := config.BackendConnectorConfig{
		HealthEndpoint:     "/health",
		AskEndpoint:        "/ask",
		ChurnEndpoint:      "/analyze-churn",
		MultiAgentEndpoint: "/multi-agent-analyze",
		EvaluationEndpoint: "/evaluation-results",
		MaxResponseLength:  2000,
	}
	cfg.Url = srvURL
	return NewConnector(cfg, zap.NewNop())
}

func TestAsk_WireFormat(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)

		w.Write([]byte(`{"answer":"Pricing.","sources":[],"metrics":{"response_time_ms":100,"tokens_used":50}}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)

	ans, err := c.Ask(context.Background(), "Why do customers churn?", entity.RetrieverNaive)
	require.NoError(t, err)

	assert.Equal(t, "/ask", gotPath)
	assert.Equal(t, "Why do customers churn?", gotBody["question"])
	assert.Equal(t, "naive", gotBody["retriever_type"])
	assert.EqualValues(t, 2000, gotBody["max_response_length"])

	require.NotNil(t, ans.Plain)
	assert.Equal(t, "Pricing.", ans.Text())
}

func TestAnalyzeChurn_WireFormat(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Write([]byte(`{"answer":"High risk.","sources":[],"metrics":{"response_time_ms":100,"tokens_used":50}}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)

	_, err := c.AnalyzeChurn(context.Background(), "Assess this account", "CUST-7")
	require.NoError(t, err)

	assert.Equal(t, "Assess this account", gotBody["query"])
	assert.Equal(t, "CUST-7", gotBody["customer_id"])
	assert.Equal(t, true, gotBody["include_recommendations"])
}

func TestAnalyzeChurn_OmitsEmptyCustomerID(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Write([]byte(`{"answer":"ok","sources":[],"metrics":{"response_time_ms":1,"tokens_used":1}}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)

	_, err := c.AnalyzeChurn(context.Background(), "q", "")
	require.NoError(t, err)

	_, present := gotBody["customer_id"]
	assert.False(t, present)
}

func TestMultiAgentAnalyze_WireFormat(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Write([]byte(`{"query":"q","response":"r","key_insights":[],"citations":[],"style_notes":[],"confidence_score":0.8,"processing_stages":["research"],"total_sources":3,"errors":[]}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)

	ans, err := c.MultiAgentAnalyze(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, true, gotBody["include_background"])
	assert.Equal(t, true, gotBody["include_citations"])
	assert.True(t, ans.IsMultiAgent())
}

func TestHealth_ErrorPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":"vector store not initialized"}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)

	_, err := c.Health(context.Background())
	require.Error(t, err)

	var httpErr *pkghttp.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 503, httpErr.StatusCode)
	assert.Equal(t, "vector store not initialized", httpErr.Message)
}

func TestEvaluationResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evaluation-results", r.URL.Path)
		w.Write([]byte(`{"results":[{"retrieval_method":"naive","faithfulness":0.85}],"metrics_info":{"faithfulness":"groundedness"},"note":"n"}`))
	}))
	defer srv.Close()

	c := newTestConnector(srv.URL)

	report, err := c.EvaluationResults(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "naive", report.Results[0].RetrievalMethod)
	assert.Equal(t, "n", report.Note)
}
