package metrics

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// FunnelMetrics counts the lead funnel in-process: how many profiles were
// scored, how match evaluations split, how often buyers override a warning,
// and how many leads land. Cheap enough to stay on for every request.
type FunnelMetrics struct {
	log *slog.Logger

	scoresComputedTotal   int64
	evaluationsTotal      int64
	evaluationsMatched    int64
	evaluationsMismatched int64
	warningsShownTotal    int64
	overridesTotal        int64
	leadsCreatedTotal     int64
	leadFailuresTotal     int64
}

var (
	globalMetrics *FunnelMetrics
	metricsOnce   sync.Once
)

// GetFunnelMetrics returns the process-wide metrics instance.
func GetFunnelMetrics(log *slog.Logger) *FunnelMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &FunnelMetrics{log: log}
	})
	return globalMetrics
}

// NewFunnelMetrics builds an isolated instance, used by tests.
func NewFunnelMetrics(log *slog.Logger) *FunnelMetrics {
	return &FunnelMetrics{log: log}
}

// RecordScoreComputed counts one scoring engine run.
func (m *FunnelMetrics) RecordScoreComputed() {
	atomic.AddInt64(&m.scoresComputedTotal, 1)
}

// RecordEvaluation counts one match evaluation and its outcome.
func (m *FunnelMetrics) RecordEvaluation(matched bool) {
	atomic.AddInt64(&m.evaluationsTotal, 1)
	if matched {
		atomic.AddInt64(&m.evaluationsMatched, 1)
	} else {
		atomic.AddInt64(&m.evaluationsMismatched, 1)
	}
}

// RecordWarningShown counts a mismatch surfaced to the buyer.
func (m *FunnelMetrics) RecordWarningShown() {
	atomic.AddInt64(&m.warningsShownTotal, 1)
}

// RecordOverride counts a buyer proceeding despite a warning.
func (m *FunnelMetrics) RecordOverride() {
	atomic.AddInt64(&m.overridesTotal, 1)
}

// RecordLeadCreated counts a persisted lead.
func (m *FunnelMetrics) RecordLeadCreated() {
	atomic.AddInt64(&m.leadsCreatedTotal, 1)
}

// RecordLeadFailure counts a lead write that failed after evaluation.
func (m *FunnelMetrics) RecordLeadFailure() {
	atomic.AddInt64(&m.leadFailuresTotal, 1)
}

// Stats is a snapshot of the funnel counters.
type Stats struct {
	ScoresComputedTotal   int64   `json:"scores_computed_total"`
	EvaluationsTotal      int64   `json:"evaluations_total"`
	EvaluationsMatched    int64   `json:"evaluations_matched"`
	EvaluationsMismatched int64   `json:"evaluations_mismatched"`
	MatchRate             float64 `json:"match_rate"`
	WarningsShownTotal    int64   `json:"warnings_shown_total"`
	OverridesTotal        int64   `json:"overrides_total"`
	OverrideRate          float64 `json:"override_rate"`
	LeadsCreatedTotal     int64   `json:"leads_created_total"`
	LeadFailuresTotal     int64   `json:"lead_failures_total"`
}

// GetStats returns the current snapshot.
func (m *FunnelMetrics) GetStats() Stats {
	stats := Stats{
		ScoresComputedTotal:   atomic.LoadInt64(&m.scoresComputedTotal),
		EvaluationsTotal:      atomic.LoadInt64(&m.evaluationsTotal),
		EvaluationsMatched:    atomic.LoadInt64(&m.evaluationsMatched),
		EvaluationsMismatched: atomic.LoadInt64(&m.evaluationsMismatched),
		WarningsShownTotal:    atomic.LoadInt64(&m.warningsShownTotal),
		OverridesTotal:        atomic.LoadInt64(&m.overridesTotal),
		LeadsCreatedTotal:     atomic.LoadInt64(&m.leadsCreatedTotal),
		LeadFailuresTotal:     atomic.LoadInt64(&m.leadFailuresTotal),
	}
	if stats.EvaluationsTotal > 0 {
		stats.MatchRate = float64(stats.EvaluationsMatched) / float64(stats.EvaluationsTotal)
	}
	if stats.WarningsShownTotal > 0 {
		stats.OverrideRate = float64(stats.OverridesTotal) / float64(stats.WarningsShownTotal)
	}
	return stats
}

// Reset zeroes all counters.
func (m *FunnelMetrics) Reset() {
	atomic.StoreInt64(&m.scoresComputedTotal, 0)
	atomic.StoreInt64(&m.evaluationsTotal, 0)
	atomic.StoreInt64(&m.evaluationsMatched, 0)
	atomic.StoreInt64(&m.evaluationsMismatched, 0)
	atomic.StoreInt64(&m.warningsShownTotal, 0)
	atomic.StoreInt64(&m.overridesTotal, 0)
	atomic.StoreInt64(&m.leadsCreatedTotal, 0)
	atomic.StoreInt64(&m.leadFailuresTotal, 0)
}
