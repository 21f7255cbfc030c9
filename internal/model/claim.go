package model

// Claim represents a verifiable factual assertion extracted from a document
type Claim struct {
	Text     string    `json:"text"`               // The claim text itself
	Type     ClaimType `json:"type"`               // Category of the claim
	Entities []string  `json:"entities,omitempty"` // Key entities involved
	Sentence int       `json:"sentence,omitempty"` // Sentence index in source text (0-based)
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeStatistic   ClaimType = "statistic"   // Statistics and numerical data
	ClaimTypeDate        ClaimType = "date"        // Dates and historical events
	ClaimTypeFinancial   ClaimType = "financial"   // Prices, GDP, market values
	ClaimTypeTechnical   ClaimType = "technical"   // Technical specifications
	ClaimTypeScientific  ClaimType = "scientific"  // Scientific facts
	ClaimTypeDemographic ClaimType = "demographic" // Population and demographic data
	ClaimTypeOther       ClaimType = "other"       // Anything else verifiable
)

// NormalizeClaimType maps an arbitrary type string to a known ClaimType.
// LLM output occasionally drifts from the requested vocabulary.
func NormalizeClaimType(raw string) ClaimType {
	switch ClaimType(raw) {
	case ClaimTypeStatistic, ClaimTypeDate, ClaimTypeFinancial,
		ClaimTypeTechnical, ClaimTypeScientific, ClaimTypeDemographic:
		return ClaimType(raw)
	default:
		return ClaimTypeOther
	}
}
