package score

import (
	"fmt"

	"github.com/avolkov/claimlens/internal/model"
)

// Scorer aggregates verification outcomes into a document summary
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Summarize computes status counts, the accuracy index, and diagnostic
// signals for a completed verification run
func (s *Scorer) Summarize(doc model.Document, verifications []model.Verification) model.Summary {
	summary := model.Summary{
		Total: len(verifications),
	}

	lowConfidence := 0
	for _, v := range verifications {
		switch v.Status {
		case model.StatusVerified:
			summary.Verified++
		case model.StatusInaccurate:
			summary.Inaccurate++
		case model.StatusFalse:
			summary.False++
		case model.StatusError:
			summary.Errors++
		default:
			summary.Unknown++
		}
		if v.Confidence == model.ConfidenceLow {
			lowConfidence++
		}
	}

	summary.AccuracyIndex = s.accuracyIndex(summary)
	summary.Confidence = s.determineConfidence(summary, lowConfidence)
	summary.Signals = s.buildSignals(doc, summary, verifications, lowConfidence)

	return summary
}

// accuracyIndex is the weighted share of decided claims that held up.
// VERIFIED counts full, INACCURATE half, FALSE zero. ERROR and UNKNOWN
// verdicts are excluded from the denominator.
func (s *Scorer) accuracyIndex(summary model.Summary) int {
	decided := summary.Verified + summary.Inaccurate + summary.False
	if decided == 0 {
		return 0
	}

	weighted := float64(summary.Verified) + 0.5*float64(summary.Inaccurate)
	return int(weighted / float64(decided) * 100)
}

// determineConfidence rates how much the summary itself can be trusted
func (s *Scorer) determineConfidence(summary model.Summary, lowConfidence int) string {
	decided := summary.Verified + summary.Inaccurate + summary.False
	if decided == 0 {
		return "low"
	}

	errorRatio := float64(summary.Errors+summary.Unknown) / float64(summary.Total)
	lowRatio := float64(lowConfidence) / float64(summary.Total)

	switch {
	case errorRatio > 0.3 || lowRatio > 0.5:
		return "low"
	case decided >= 5 && errorRatio < 0.1 && lowRatio < 0.25:
		return "high"
	default:
		return "medium"
	}
}

// buildSignals generates diagnostic signals with transparent data
func (s *Scorer) buildSignals(doc model.Document, summary model.Summary, verifications []model.Verification, lowConfidence int) []model.Signal {
	var signals []model.Signal

	if summary.Total == 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalNoClaims,
			Severity:    model.SeverityInfo,
			Description: "No verifiable claims found in the document",
		})
		return signals
	}

	if doc.Truncated {
		signals = append(signals, model.Signal{
			Type:        model.SignalTruncatedInput,
			Severity:    model.SeverityWarning,
			Description: "Document text was truncated before analysis; verdicts cover only the opening portion",
			Data: map[string]interface{}{
				"full_chars": doc.Chars,
			},
		})
	}

	if ratio := float64(summary.Errors) / float64(summary.Total); ratio > 0.3 {
		signals = append(signals, model.Signal{
			Type:        model.SignalErrorRatio,
			Severity:    model.SeverityCritical,
			Description: fmt.Sprintf("%d of %d claims failed to verify due to upstream errors", summary.Errors, summary.Total),
			Data: map[string]interface{}{
				"errors":      summary.Errors,
				"total":       summary.Total,
				"error_ratio": ratio,
			},
		})
	}

	if ratio := float64(lowConfidence) / float64(summary.Total); ratio > 0.5 {
		signals = append(signals, model.Signal{
			Type:        model.SignalLowConfidenceBias,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d of %d verdicts carry low confidence", lowConfidence, summary.Total),
			Data: map[string]interface{}{
				"low_confidence": lowConfidence,
				"total":          summary.Total,
			},
		})
	}

	if signal, ok := s.sourceSignals(verifications); ok {
		signals = append(signals, signal...)
	}

	return signals
}

// sourceSignals inspects probe results attached to verifications
func (s *Scorer) sourceSignals(verifications []model.Verification) ([]model.Signal, bool) {
	total, dead, tertiary := 0, 0, 0
	for _, v := range verifications {
		for _, check := range v.SourceChecks {
			total++
			if check.IsDead {
				dead++
			}
			if check.Authority == model.TierTertiary {
				tertiary++
			}
		}
	}
	if total == 0 {
		return nil, false
	}

	var signals []model.Signal

	if ratio := float64(dead) / float64(total); ratio > 0.3 {
		signals = append(signals, model.Signal{
			Type:        model.SignalDeadSources,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d of %d cited sources are unreachable", dead, total),
			Data: map[string]interface{}{
				"dead":       dead,
				"total":      total,
				"dead_ratio": ratio,
			},
		})
	}

	if ratio := float64(tertiary) / float64(total); ratio > 0.7 {
		signals = append(signals, model.Signal{
			Type:        model.SignalTertiaryEvidence,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d of %d cited sources are low-authority", tertiary, total),
			Data: map[string]interface{}{
				"tertiary": tertiary,
				"total":    total,
			},
		})
	}

	return signals, len(signals) > 0
}
