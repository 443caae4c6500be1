package console

import (
	"github.com/futig/churn-console/internal/entity"
	"github.com/montanaflynn/stats"
)

// MetricSummary aggregates one RAGAS metric across retrieval methods.
type MetricSummary struct {
	Metric string
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// evaluationMetrics fixes the display order of the summary table.
var evaluationMetrics = []struct {
	name  string
	value func(entity.EvaluationResult) float64
}{
	{"faithfulness", func(r entity.EvaluationResult) float64 { return r.Faithfulness }},
	{"answer_relevancy", func(r entity.EvaluationResult) float64 { return r.AnswerRelevancy }},
	{"context_recall", func(r entity.EvaluationResult) float64 { return r.ContextRecall }},
	{"context_precision", func(r entity.EvaluationResult) float64 { return r.ContextPrecision }},
	{"answer_correctness", func(r entity.EvaluationResult) float64 { return r.AnswerCorrectness }},
	{"answer_similarity", func(r entity.EvaluationResult) float64 { return r.AnswerSimilarity }},
}

// SummarizeEvaluation computes per-metric aggregates across every
// retrieval method in the report. Empty reports yield no rows.
func SummarizeEvaluation(report *entity.EvaluationReport) []MetricSummary {
	if report == nil || len(report.Results) == 0 {
		return nil
	}

	summaries := make([]MetricSummary, 0, len(evaluationMetrics))
	for _, metric := range evaluationMetrics {
		values := make(stats.Float64Data, 0, len(report.Results))
		for _, res := range report.Results {
			values = append(values, metric.value(res))
		}

		mean, _ := stats.Mean(values)
		median, _ := stats.Median(values)
		min, _ := stats.Min(values)
		max, _ := stats.Max(values)

		summaries = append(summaries, MetricSummary{
			Metric: metric.name,
			Mean:   mean,
			Median: median,
			Min:    min,
			Max:    max,
		})
	}

	return summaries
}
