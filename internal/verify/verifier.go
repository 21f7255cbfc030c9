package verify

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/avolkov/claimlens/internal/llm"
	"github.com/avolkov/claimlens/internal/model"
	"github.com/avolkov/claimlens/internal/search"
)

const verifySystemPrompt = "You are a professional fact-checker. Analyze claims against evidence and provide accurate verification."

// Searcher is the web-search dependency of the verifier
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Response, error)
}

// Verifier checks a single claim against live web evidence
type Verifier struct {
	provider        llm.Provider
	searcher        Searcher
	strategies      *search.StrategyRegistry
	maxSources      int // Results passed into the verification prompt
	snippetMaxChars int
}

// Options configures a Verifier
type Options struct {
	MaxSources      int
	SnippetMaxChars int
}

// NewVerifier creates a new verifier
func NewVerifier(provider llm.Provider, searcher Searcher, opts Options) *Verifier {
	maxSources := opts.MaxSources
	if maxSources <= 0 {
		maxSources = 3
	}
	snippetMaxChars := opts.SnippetMaxChars
	if snippetMaxChars <= 0 {
		snippetMaxChars = 500
	}

	return &Verifier{
		provider:        provider,
		searcher:        searcher,
		strategies:      search.NewStrategyRegistry(),
		maxSources:      maxSources,
		snippetMaxChars: snippetMaxChars,
	}
}

// verdict matches the JSON shape requested from the LLM
type verdict struct {
	Status      string `json:"status"`
	Explanation string `json:"explanation"`
	CorrectInfo string `json:"correct_info"`
	Confidence  string `json:"confidence"`
}

// Result pairs the verification with its token cost
type Result struct {
	Verification model.Verification
	TokensUsed   int
}

// VerifyClaim searches the web for the claim and asks the LLM to classify
// it against the evidence. Failures never propagate as errors: a claim
// that cannot be verified gets StatusError so the rest of the document
// still completes.
func (v *Verifier) VerifyClaim(ctx context.Context, claim model.Claim) Result {
	query := v.strategies.QueryFor(claim)

	searchResp, err := v.searcher.Search(ctx, query)
	if err != nil {
		return errorResult(claim, query, fmt.Sprintf("web search failed: %v", err))
	}

	evidence := searchResp.Results
	if len(evidence) > v.maxSources {
		evidence = evidence[:v.maxSources]
	}

	resp, err := v.provider.Complete(ctx, llm.CompletionRequest{
		System:      verifySystemPrompt,
		Prompt:      v.buildVerifyPrompt(claim, evidence),
		Temperature: 0.2,
		JSONOnly:    true,
	})
	if err != nil {
		return errorResult(claim, query, fmt.Sprintf("verification call failed: %v", err))
	}

	var vd verdict
	if err := llm.DecodeJSON(resp.Content, &vd); err != nil {
		return errorResult(claim, query, fmt.Sprintf("unparseable verdict: %v", err))
	}

	sources := make([]string, 0, len(evidence))
	for _, r := range evidence {
		if r.URL != "" {
			sources = append(sources, r.URL)
		}
	}

	return Result{
		Verification: model.Verification{
			Claim:       claim,
			Status:      model.NormalizeStatus(vd.Status),
			Explanation: vd.Explanation,
			CorrectInfo: vd.CorrectInfo,
			Confidence:  model.NormalizeConfidence(vd.Confidence),
			Sources:     sources,
			Query:       query,
		},
		TokensUsed: resp.TokensUsed,
	}
}

// buildVerifyPrompt constructs the verification prompt with evidence context
func (v *Verifier) buildVerifyPrompt(claim model.Claim, evidence []search.Result) string {
	var ctx strings.Builder
	for i, r := range evidence {
		content := r.Content
		if len(content) > v.snippetMaxChars {
			cut := v.snippetMaxChars
			// Back up to a rune boundary; a byte cut can split UTF-8
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
		}
		ctx.WriteString(fmt.Sprintf("\nSource %d:\nTitle: %s\nContent: %s\nURL: %s\n", i+1, r.Title, content, r.URL))
	}

	evidenceBlock := ctx.String()
	if evidenceBlock == "" {
		evidenceBlock = "No search results found."
	}

	return fmt.Sprintf(`You are a fact-checker. Verify the following claim against the provided web search results.

Claim to verify:
"%s"

Claim Type: %s

Web Search Results:
%s

Based on the search results, determine:
1. Is the claim VERIFIED (matches current data), INACCURATE (outdated or partially wrong), or FALSE (no evidence or contradicts evidence)?
2. What is the correct/current information if the claim is inaccurate or false?
3. Provide a brief explanation.

Return your response as JSON with this structure:
{
  "status": "VERIFIED|INACCURATE|FALSE",
  "explanation": "brief explanation of your verification",
  "correct_info": "correct information if status is INACCURATE or FALSE, otherwise null",
  "confidence": "HIGH|MEDIUM|LOW"
}

Return ONLY valid JSON, no additional text.`, claim.Text, claim.Type, evidenceBlock)
}

func errorResult(claim model.Claim, query, msg string) Result {
	return Result{
		Verification: model.Verification{
			Claim:       claim,
			Status:      model.StatusError,
			Explanation: msg,
			Confidence:  model.ConfidenceLow,
			Query:       query,
		},
	}
}
