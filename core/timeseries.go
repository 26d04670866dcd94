package core

import (
	"github.com/huangsam/edgecov/schema"
)

// BuildTrendSeries projects scenario records into three aligned columns.
// Position i of every column is the i-th record; nothing is reordered or dropped.
func BuildTrendSeries(records []schema.ScenarioRecord) (schema.TrendSeries, error) {
	if len(records) == 0 {
		return schema.TrendSeries{}, &schema.EmptyInputError{Operation: "trend series"}
	}
	series := schema.TrendSeries{
		UUIDs:            make([]string, len(records)),
		EdgeCoveredCount: make([]int, len(records)),
		EdgeCoverage:     make([]float64, len(records)),
		StatusCodeCount:  make([]int, len(records)),
	}
	for i, r := range records {
		series.UUIDs[i] = r.UUID
		series.EdgeCoveredCount[i] = r.EdgeCoveredCount
		series.EdgeCoverage[i] = r.EdgeCoverage
		series.StatusCodeCount[i] = r.StatusCodeCount
	}
	return series, nil
}

// SummarizeTrend reports first, last, min, max and delta for each metric.
// An empty series yields an empty summary.
func SummarizeTrend(series schema.TrendSeries) []schema.MetricTrend {
	summary := make([]schema.MetricTrend, 0, len(schema.AllTrendMetrics))
	if series.Len() == 0 {
		return summary
	}
	for _, metric := range schema.AllTrendMetrics {
		summary = append(summary, summarizeMetric(metric, metricValues(series, metric)))
	}
	return summary
}

// metricValues returns one column of the series as float64.
func metricValues(series schema.TrendSeries, metric schema.TrendMetric) []float64 {
	switch metric {
	case schema.MetricEdgeCoverage:
		return series.EdgeCoverage
	case schema.MetricEdgeCoveredCount:
		return intsToFloats(series.EdgeCoveredCount)
	case schema.MetricStatusCodeCount:
		return intsToFloats(series.StatusCodeCount)
	default:
		return nil
	}
}

func intsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func summarizeMetric(metric schema.TrendMetric, values []float64) schema.MetricTrend {
	first, last := values[0], values[len(values)-1]
	trend := schema.MetricTrend{
		Metric: metric,
		First:  first,
		Last:   last,
		Min:    first,
		Max:    first,
		Delta:  last - first,
	}
	for _, v := range values[1:] {
		trend.Min = min(trend.Min, v)
		trend.Max = max(trend.Max, v)
	}
	switch {
	case trend.Delta > 0:
		trend.Direction = schema.TrendUp
	case trend.Delta < 0:
		trend.Direction = schema.TrendDown
	default:
		trend.Direction = schema.TrendStable
	}
	return trend
}
