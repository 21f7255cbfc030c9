package model

// VerificationStatus is the outcome of checking a claim against web evidence
type VerificationStatus string

const (
	StatusVerified   VerificationStatus = "VERIFIED"   // Matches current data
	StatusInaccurate VerificationStatus = "INACCURATE" // Outdated or partially wrong
	StatusFalse      VerificationStatus = "FALSE"      // No evidence or contradicts evidence
	StatusUnknown    VerificationStatus = "UNKNOWN"    // LLM returned an unrecognized status
	StatusError      VerificationStatus = "ERROR"      // Search or verification call failed
)

// NormalizeStatus maps an arbitrary status string to a known VerificationStatus
func NormalizeStatus(raw string) VerificationStatus {
	switch VerificationStatus(raw) {
	case StatusVerified, StatusInaccurate, StatusFalse, StatusError:
		return VerificationStatus(raw)
	default:
		return StatusUnknown
	}
}

// Confidence expresses how sure the verifier is about its status call
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// NormalizeConfidence maps an arbitrary confidence string to a known Confidence
func NormalizeConfidence(raw string) Confidence {
	switch Confidence(raw) {
	case ConfidenceHigh, ConfidenceLow:
		return Confidence(raw)
	default:
		return ConfidenceMedium
	}
}

// Verification is the result of verifying a single claim
type Verification struct {
	Claim       Claim              `json:"claim"`
	Status      VerificationStatus `json:"status"`
	Explanation string             `json:"explanation,omitempty"`
	CorrectInfo string             `json:"correct_info,omitempty"` // Correction when INACCURATE or FALSE
	Confidence  Confidence         `json:"confidence"`
	Sources     []string           `json:"sources,omitempty"` // URLs of the evidence actually used
	Query       string             `json:"query,omitempty"`   // Search query issued for this claim

	SourceChecks []SourceCheck `json:"source_checks,omitempty"` // Accessibility probes of cited sources
}

// SourceCheck records the accessibility probe of a cited source URL
type SourceCheck struct {
	URL          string        `json:"url"`
	IsAccessible bool          `json:"is_accessible"`
	StatusCode   int           `json:"status_code,omitempty"`
	IsDead       bool          `json:"is_dead"` // 404, 410, or timeout
	Authority    AuthorityTier `json:"authority"`
	Error        string        `json:"error,omitempty"`
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Official statistics, laws, academic papers
	TierSecondary AuthorityTier = 2 // Encyclopedias, major publishers, reputable media
	TierTertiary  AuthorityTier = 3 // Blogs, personal websites, aggregators
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}
