package model

import "time"

// Report represents the complete fact-check result for one document
type Report struct {
	Document  Document  `json:"document"`
	CheckedAt time.Time `json:"checked_at"`

	Claims        []Claim        `json:"claims"`        // Extracted claims
	Verifications []Verification `json:"verifications"` // One per claim, same order

	Summary Summary `json:"summary"`

	LLM LLMUsage `json:"llm"` // Provider/model attribution and token spend
}

// Summary aggregates verification outcomes for the whole document
type Summary struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Inaccurate int `json:"inaccurate"`
	False      int `json:"false"`
	Unknown    int `json:"unknown"`
	Errors     int `json:"errors"`

	AccuracyIndex int      `json:"accuracy_index"` // 0-100, weighted status ratio
	Confidence    string   `json:"confidence"`     // "low", "medium", "high"
	Signals       []Signal `json:"signals,omitempty"`
}

// Signal represents a diagnostic observation about the verification run
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Inputs behind the signal
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalNoClaims          SignalType = "no_claims"           // Document yielded zero claims
	SignalErrorRatio        SignalType = "error_ratio"         // Many claims failed to verify
	SignalLowConfidenceBias SignalType = "low_confidence_bias" // Verdicts mostly low-confidence
	SignalDeadSources       SignalType = "dead_sources"        // Cited sources unreachable
	SignalTruncatedInput    SignalType = "truncated_input"     // Only a prefix of the document was analyzed
	SignalTertiaryEvidence  SignalType = "tertiary_evidence"   // Evidence dominated by low-authority sources
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// LLMUsage records which provider produced the verdicts and what it cost
type LLMUsage struct {
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
	TokensUsed  int    `json:"tokens_used,omitempty"`
	Completions int    `json:"completions,omitempty"` // Number of chat completions issued
}
