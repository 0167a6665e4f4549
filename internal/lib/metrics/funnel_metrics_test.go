package metrics

import (
	"log/slog"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFunnelMetrics_RecordEvaluation(t *testing.T) {
	m := NewFunnelMetrics(testLogger())

	m.RecordEvaluation(true)
	m.RecordEvaluation(true)
	m.RecordEvaluation(true)
	m.RecordEvaluation(false)

	stats := m.GetStats()
	if stats.EvaluationsTotal != 4 {
		t.Errorf("expected 4 evaluations, got %d", stats.EvaluationsTotal)
	}
	if stats.EvaluationsMatched != 3 {
		t.Errorf("expected 3 matched, got %d", stats.EvaluationsMatched)
	}
	if stats.EvaluationsMismatched != 1 {
		t.Errorf("expected 1 mismatched, got %d", stats.EvaluationsMismatched)
	}
	if stats.MatchRate != 0.75 {
		t.Errorf("expected match rate 0.75, got %.2f", stats.MatchRate)
	}
}

func TestFunnelMetrics_OverrideRate(t *testing.T) {
	m := NewFunnelMetrics(testLogger())

	m.RecordWarningShown()
	m.RecordWarningShown()
	m.RecordWarningShown()
	m.RecordWarningShown()
	m.RecordOverride()

	stats := m.GetStats()
	if stats.OverrideRate != 0.25 {
		t.Errorf("expected override rate 0.25, got %.2f", stats.OverrideRate)
	}
}

func TestFunnelMetrics_EmptyRatesAreZero(t *testing.T) {
	m := NewFunnelMetrics(testLogger())

	stats := m.GetStats()
	if stats.MatchRate != 0 {
		t.Errorf("expected zero match rate, got %.2f", stats.MatchRate)
	}
	if stats.OverrideRate != 0 {
		t.Errorf("expected zero override rate, got %.2f", stats.OverrideRate)
	}
}

func TestFunnelMetrics_Reset(t *testing.T) {
	m := NewFunnelMetrics(testLogger())

	m.RecordScoreComputed()
	m.RecordEvaluation(false)
	m.RecordWarningShown()
	m.RecordOverride()
	m.RecordLeadCreated()
	m.RecordLeadFailure()

	m.Reset()

	stats := m.GetStats()
	if stats.ScoresComputedTotal != 0 || stats.EvaluationsTotal != 0 ||
		stats.WarningsShownTotal != 0 || stats.OverridesTotal != 0 ||
		stats.LeadsCreatedTotal != 0 || stats.LeadFailuresTotal != 0 {
		t.Errorf("expected all counters zero after reset, got %+v", stats)
	}
}

func TestGetFunnelMetrics_Singleton(t *testing.T) {
	log := testLogger()

	m1 := GetFunnelMetrics(log)
	m2 := GetFunnelMetrics(log)

	if m1 != m2 {
		t.Error("expected GetFunnelMetrics to return singleton instance")
	}
}
