package ui

import (
	"html/template"

	"github.com/futig/churn-console/internal/entity"
	"github.com/futig/churn-console/internal/usecase/console"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// pageView is everything the index template needs. Exactly one of
// Plain/MultiAgent is set when an answer is present; the template
// branches on that to pick the display shape.
type pageView struct {
	Query      string
	CustomerID string
	Mode       entity.Mode
	Retriever  entity.RetrieverKind
	Retrievers []retrieverOption
	Backend    entity.BackendStatus
	Submitting bool

	ErrorMessage string
	Plain        *plainAnswerView
	MultiAgent   *multiAgentView
}

type retrieverOption struct {
	Kind     entity.RetrieverKind
	Label    string
	Selected bool
}

type plainAnswerView struct {
	AnswerHTML      template.HTML
	CustomerID      string
	ChurnRiskScore  *float64
	Recommendations []string
	Sources         []entity.Source
	Metrics         entity.Metrics
}

type multiAgentView struct {
	AnswerHTML        template.HTML
	QueryType         string
	BackgroundContext string
	KeyInsights       []string
	Citations         []string
	StyleNotes        []string
	ConfidenceScore   float64
	ProcessingStages  []string
	TotalSources      int
	Errors            []string
}

type evaluationView struct {
	Results      []entity.EvaluationResult
	Summary      []console.MetricSummary
	MetricsInfo  map[string]string
	Note         string
	ErrorMessage string
}

func newPageView(st console.State) pageView {
	view := pageView{
		Query:        st.Query,
		CustomerID:   st.CustomerID,
		Mode:         st.Mode,
		Retriever:    st.Retriever,
		Backend:      st.Backend,
		Submitting:   st.Phase == console.PhaseSubmitting,
		ErrorMessage: st.ErrorMessage,
	}

	for _, kind := range entity.RetrieverKinds {
		view.Retrievers = append(view.Retrievers, retrieverOption{
			Kind:     kind,
			Label:    kind.Label(),
			Selected: kind == st.Retriever,
		})
	}

	if st.Answer == nil {
		return view
	}

	if ma := st.Answer.MultiAgent; ma != nil {
		citations := make([]string, 0, len(ma.Citations))
		for _, cit := range ma.Citations {
			citations = append(citations, console.FormatCitation(cit))
		}
		view.MultiAgent = &multiAgentView{
			AnswerHTML:        renderMarkdown(ma.Response),
			QueryType:         ma.QueryType,
			BackgroundContext: ma.BackgroundContext,
			KeyInsights:       ma.KeyInsights,
			Citations:         citations,
			StyleNotes:        ma.StyleNotes,
			ConfidenceScore:   ma.ConfidenceScore,
			ProcessingStages:  ma.ProcessingStages,
			TotalSources:      ma.TotalSources,
			Errors:            ma.Errors,
		}
		return view
	}

	if pa := st.Answer.Plain; pa != nil {
		view.Plain = &plainAnswerView{
			AnswerHTML:      renderMarkdown(pa.Answer),
			CustomerID:      pa.CustomerID,
			ChurnRiskScore:  pa.ChurnRiskScore,
			Recommendations: pa.Recommendations,
			Sources:         pa.Sources,
			Metrics:         pa.Metrics,
		}
	}

	return view
}

// renderMarkdown converts backend answer text (markdown) to HTML for
// the page templates.
func renderMarkdown(text string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(text), p, renderer))
}
