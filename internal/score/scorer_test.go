package score

import (
	"testing"

	"github.com/avolkov/claimlens/internal/model"
)

func vstatus(statuses ...model.VerificationStatus) []model.Verification {
	out := make([]model.Verification, len(statuses))
	for i, s := range statuses {
		out[i] = model.Verification{Status: s, Confidence: model.ConfidenceMedium}
	}
	return out
}

func hasSignal(signals []model.Signal, signalType model.SignalType) bool {
	for _, s := range signals {
		if s.Type == signalType {
			return true
		}
	}
	return false
}

func TestSummarize_Counts(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Summarize(model.Document{}, vstatus(
		model.StatusVerified, model.StatusVerified,
		model.StatusInaccurate,
		model.StatusFalse,
		model.StatusError,
		model.StatusUnknown,
	))

	if summary.Total != 6 {
		t.Errorf("expected total 6, got %d", summary.Total)
	}
	if summary.Verified != 2 || summary.Inaccurate != 1 || summary.False != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.Errors != 1 || summary.Unknown != 1 {
		t.Errorf("unexpected error/unknown counts: %+v", summary)
	}
}

func TestAccuracyIndex_Weighting(t *testing.T) {
	scorer := NewScorer()

	// 2 verified + 1 inaccurate + 1 false: (2 + 0.5) / 4 = 62%
	summary := scorer.Summarize(model.Document{}, vstatus(
		model.StatusVerified, model.StatusVerified,
		model.StatusInaccurate,
		model.StatusFalse,
	))

	if summary.AccuracyIndex != 62 {
		t.Errorf("expected accuracy 62, got %d", summary.AccuracyIndex)
	}
}

func TestAccuracyIndex_ErrorsExcluded(t *testing.T) {
	scorer := NewScorer()

	// Errors carry no information about the claims themselves
	withErrors := scorer.Summarize(model.Document{}, vstatus(
		model.StatusVerified, model.StatusError, model.StatusError,
	))
	if withErrors.AccuracyIndex != 100 {
		t.Errorf("expected accuracy 100 ignoring errors, got %d", withErrors.AccuracyIndex)
	}
}

func TestAccuracyIndex_NothingDecided(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Summarize(model.Document{}, vstatus(model.StatusError, model.StatusUnknown))
	if summary.AccuracyIndex != 0 {
		t.Errorf("expected accuracy 0 with nothing decided, got %d", summary.AccuracyIndex)
	}
	if summary.Confidence != "low" {
		t.Errorf("expected low confidence, got %q", summary.Confidence)
	}
}

func TestDetermineConfidence_High(t *testing.T) {
	scorer := NewScorer()

	verifications := vstatus(
		model.StatusVerified, model.StatusVerified, model.StatusVerified,
		model.StatusVerified, model.StatusInaccurate, model.StatusFalse,
	)
	summary := scorer.Summarize(model.Document{}, verifications)

	if summary.Confidence != "high" {
		t.Errorf("expected high confidence for clean run, got %q", summary.Confidence)
	}
}

func TestDetermineConfidence_LowOnErrors(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Summarize(model.Document{}, vstatus(
		model.StatusVerified, model.StatusError, model.StatusError,
	))
	if summary.Confidence != "low" {
		t.Errorf("expected low confidence with high error ratio, got %q", summary.Confidence)
	}
}

func TestSignals_NoClaims(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Summarize(model.Document{}, nil)
	if !hasSignal(summary.Signals, model.SignalNoClaims) {
		t.Error("expected no_claims signal for empty run")
	}
	if summary.Signals[0].Severity != model.SeverityInfo {
		t.Errorf("expected info severity, got %q", summary.Signals[0].Severity)
	}
}

func TestSignals_TruncatedInput(t *testing.T) {
	scorer := NewScorer()

	doc := model.Document{Truncated: true, Chars: 50000}
	summary := scorer.Summarize(doc, vstatus(model.StatusVerified))
	if !hasSignal(summary.Signals, model.SignalTruncatedInput) {
		t.Error("expected truncated_input signal")
	}
}

func TestSignals_ErrorRatio(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Summarize(model.Document{}, vstatus(
		model.StatusVerified, model.StatusError, model.StatusError,
	))
	if !hasSignal(summary.Signals, model.SignalErrorRatio) {
		t.Error("expected error_ratio signal above 30% errors")
	}

	clean := scorer.Summarize(model.Document{}, vstatus(
		model.StatusVerified, model.StatusVerified, model.StatusVerified, model.StatusError,
	))
	if hasSignal(clean.Signals, model.SignalErrorRatio) {
		t.Error("did not expect error_ratio signal at 25% errors")
	}
}

func TestSignals_LowConfidenceBias(t *testing.T) {
	scorer := NewScorer()

	verifications := []model.Verification{
		{Status: model.StatusVerified, Confidence: model.ConfidenceLow},
		{Status: model.StatusVerified, Confidence: model.ConfidenceLow},
		{Status: model.StatusVerified, Confidence: model.ConfidenceHigh},
	}
	summary := scorer.Summarize(model.Document{}, verifications)
	if !hasSignal(summary.Signals, model.SignalLowConfidenceBias) {
		t.Error("expected low_confidence_bias signal")
	}
}

func TestSignals_DeadSources(t *testing.T) {
	scorer := NewScorer()

	verifications := []model.Verification{
		{
			Status:     model.StatusVerified,
			Confidence: model.ConfidenceHigh,
			SourceChecks: []model.SourceCheck{
				{URL: "https://a.example.com", IsDead: true},
				{URL: "https://b.example.com", IsAccessible: true},
			},
		},
	}
	summary := scorer.Summarize(model.Document{}, verifications)
	if !hasSignal(summary.Signals, model.SignalDeadSources) {
		t.Error("expected dead_sources signal at 50% dead")
	}
}

func TestSignals_TertiaryEvidence(t *testing.T) {
	scorer := NewScorer()

	verifications := []model.Verification{
		{
			Status:     model.StatusVerified,
			Confidence: model.ConfidenceHigh,
			SourceChecks: []model.SourceCheck{
				{URL: "https://a.example.com", IsAccessible: true, Authority: model.TierTertiary},
				{URL: "https://b.example.com", IsAccessible: true, Authority: model.TierTertiary},
				{URL: "https://c.example.com", IsAccessible: true, Authority: model.TierTertiary},
			},
		},
	}
	summary := scorer.Summarize(model.Document{}, verifications)
	if !hasSignal(summary.Signals, model.SignalTertiaryEvidence) {
		t.Error("expected tertiary_evidence signal when all sources are low-authority")
	}
}
