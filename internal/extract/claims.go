package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/avolkov/claimlens/internal/llm"
	"github.com/avolkov/claimlens/internal/model"
)

const extractSystemPrompt = "You are a fact-checking assistant. Extract verifiable claims from text and return them as JSON with a 'claims' array."

// ClaimExtractor extracts verifiable claims from document text via an LLM
type ClaimExtractor struct {
	provider llm.Provider
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor(provider llm.Provider) *ClaimExtractor {
	return &ClaimExtractor{provider: provider}
}

// ExtractResult contains the extracted claims and token accounting
type ExtractResult struct {
	Claims     []model.Claim
	Model      string
	TokensUsed int
}

// claimEnvelope matches the JSON shape requested from the LLM
type claimEnvelope struct {
	Claims []rawClaim `json:"claims"`
}

type rawClaim struct {
	Claim    string   `json:"claim"`
	Type     string   `json:"type"`
	Entities []string `json:"entities"`
}

// Extract asks the LLM for all verifiable claims in the text
func (e *ClaimExtractor) Extract(ctx context.Context, text string) (*ExtractResult, error) {
	if strings.TrimSpace(text) == "" {
		return &ExtractResult{}, nil
	}

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      extractSystemPrompt,
		Prompt:      buildExtractPrompt(text),
		Temperature: 0.3,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("claim extraction: %w", err)
	}

	raw, err := parseClaims(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("claim extraction: %w", err)
	}

	claims := make([]model.Claim, 0, len(raw))
	for _, rc := range raw {
		claimText := strings.TrimSpace(rc.Claim)
		if claimText == "" {
			continue
		}
		claims = append(claims, model.Claim{
			Text:     claimText,
			Type:     model.NormalizeClaimType(rc.Type),
			Entities: rc.Entities,
			Sentence: sentenceIndex(text, claimText),
		})
	}

	return &ExtractResult{
		Claims:     dedupeClaims(claims),
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
	}, nil
}

// buildExtractPrompt constructs the claim-extraction prompt
func buildExtractPrompt(text string) string {
	return fmt.Sprintf(`Analyze the following text and extract all verifiable claims. Focus on:
- Statistics and numerical data
- Dates and historical events
- Financial figures (prices, GDP, market values, etc.)
- Technical specifications
- Scientific facts
- Demographic data
- Any factual statements that can be verified

For each claim, extract:
1. The exact claim text
2. The type of claim (statistic, date, financial, technical, scientific, demographic, or other)
3. The key entities involved

Return the results as a JSON object with a "claims" array. Structure:
{
  "claims": [
    {
      "claim": "exact claim text from document",
      "type": "statistic|date|financial|technical|scientific|demographic|other",
      "entities": ["entity1", "entity2"]
    }
  ]
}

Text to analyze:
%s

Return ONLY valid JSON, no additional text.`, text)
}

// parseClaims tolerates both the requested envelope and a bare array
func parseClaims(content string) ([]rawClaim, error) {
	var envelope claimEnvelope
	if err := llm.DecodeJSON(content, &envelope); err == nil && envelope.Claims != nil {
		return envelope.Claims, nil
	}

	var bare []rawClaim
	if err := llm.DecodeJSON(content, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("unexpected response shape")
}

// sentenceIndex locates the claim within the source text and returns the
// 0-based index of the sentence it starts in. Returns 0 when not found;
// the LLM sometimes paraphrases.
func sentenceIndex(text, claim string) int {
	probe := claim
	if len(probe) > 40 {
		probe = probe[:40]
	}

	pos := strings.Index(strings.ToLower(text), strings.ToLower(probe))
	if pos <= 0 {
		return 0
	}

	count := 0
	for _, r := range text[:pos] {
		if r == '.' || r == '!' || r == '?' {
			count++
		}
	}
	return count
}

// dedupeClaims removes exact duplicate claims, preserving order
func dedupeClaims(claims []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var unique []model.Claim

	for _, claim := range claims {
		key := strings.ToLower(strings.TrimSpace(claim.Text))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, claim)
		}
	}

	return unique
}
