package console

import (
	"fmt"
	"strings"

	"github.com/futig/churn-console/internal/entity"
)

// BuildReport renders an answer as a markdown document. Used for file
// export and for the Telegram front-end; empty fields suppress their
// whole section.
func BuildReport(a *entity.Answer) string {
	if a == nil {
		return ""
	}
	if a.MultiAgent != nil {
		return buildMultiAgentReport(a.MultiAgent)
	}
	if a.Plain != nil {
		return buildPlainReport(a.Plain)
	}
	return ""
}

func buildPlainReport(pa *entity.PlainAnswer) string {
	var b strings.Builder

	b.WriteString("## Answer\n\n")
	b.WriteString(pa.Answer)
	b.WriteString("\n")

	if pa.ChurnRiskScore != nil {
		fmt.Fprintf(&b, "\n**Churn risk score:** %.2f\n", *pa.ChurnRiskScore)
	}
	if pa.CustomerID != "" {
		fmt.Fprintf(&b, "\n**Customer:** %s\n", pa.CustomerID)
	}

	if len(pa.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, rec := range pa.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	if len(pa.Sources) > 0 {
		b.WriteString("\n## Sources\n\n")
		for i, src := range pa.Sources {
			fmt.Fprintf(&b, "%d. %s (relevance %.2f)\n", i+1, src.Content, src.RelevanceScore)
		}
	}

	fmt.Fprintf(&b, "\n---\n%.0f ms, %d tokens", pa.Metrics.ResponseTimeMs, pa.Metrics.TokensUsed)
	if pa.Metrics.RetrievalMethod != "" {
		fmt.Fprintf(&b, ", retriever: %s", pa.Metrics.RetrievalMethod)
	}
	b.WriteString("\n")

	return b.String()
}

func buildMultiAgentReport(ma *entity.MultiAgentAnswer) string {
	var b strings.Builder

	if ma.BackgroundContext != "" {
		b.WriteString("## Background\n\n")
		b.WriteString(ma.BackgroundContext)
		b.WriteString("\n\n")
	}

	if len(ma.KeyInsights) > 0 {
		b.WriteString("## Key Insights\n\n")
		for _, ins := range ma.KeyInsights {
			fmt.Fprintf(&b, "- %s\n", ins)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Answer\n\n")
	b.WriteString(ma.Response)
	b.WriteString("\n")

	if len(ma.Citations) > 0 {
		b.WriteString("\n## Citations\n\n")
		for i, cit := range ma.Citations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, FormatCitation(cit))
		}
	}

	if len(ma.StyleNotes) > 0 {
		b.WriteString("\n## Style Notes\n\n")
		for _, note := range ma.StyleNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	fmt.Fprintf(&b, "\n---\nConfidence %.2f, %d sources", ma.ConfidenceScore, ma.TotalSources)
	if len(ma.ProcessingStages) > 0 {
		fmt.Fprintf(&b, ", stages: %s", strings.Join(ma.ProcessingStages, " > "))
	}
	b.WriteString("\n")

	return b.String()
}

// FormatCitation flattens a sparse citation into one display line,
// skipping absent fields.
func FormatCitation(c entity.Citation) string {
	var parts []string

	if c.Customer != "" {
		parts = append(parts, c.Customer)
	}
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	if c.Segment != "" {
		parts = append(parts, "segment: "+c.Segment)
	}
	if c.ChurnReason != "" {
		parts = append(parts, "reason: "+c.ChurnReason)
	}
	if c.URL != "" {
		parts = append(parts, c.URL)
	}
	if len(parts) == 0 && c.ID != "" {
		parts = append(parts, c.ID)
	}

	return strings.Join(parts, ", ")
}
