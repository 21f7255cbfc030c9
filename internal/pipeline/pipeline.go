package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avolkov/claimlens/internal/cache"
	"github.com/avolkov/claimlens/internal/extract"
	"github.com/avolkov/claimlens/internal/llm"
	"github.com/avolkov/claimlens/internal/model"
	"github.com/avolkov/claimlens/internal/pdftext"
	"github.com/avolkov/claimlens/internal/probe"
	"github.com/avolkov/claimlens/internal/score"
	"github.com/avolkov/claimlens/internal/search"
	"github.com/avolkov/claimlens/internal/verify"
	"github.com/avolkov/claimlens/internal/worker"
	"github.com/google/uuid"
)

// Pipeline orchestrates the complete fact-check process:
// PDF text extraction, claim extraction, per-claim web verification,
// source probing, and scoring.
type Pipeline struct {
	textExtractor  *pdftext.Extractor
	claimExtractor *extract.ClaimExtractor
	verifier       *verify.Verifier
	prober         *probe.Prober // nil when source probing is disabled
	scorer         *score.Scorer
	renderer       *Renderer
	provider       llm.Provider
	config         *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	searchClient, err := search.NewClient(search.Options{
		APIKey:       cfg.Search.APIKey,
		BaseURL:      cfg.Search.BaseURL,
		Depth:        cfg.Search.Depth,
		MaxResults:   cfg.Search.MaxResults,
		Timeout:      cfg.Search.Timeout,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		HTTPProxy:    cfg.HTTP.HTTPProxy,
		HTTPSProxy:   cfg.HTTP.HTTPSProxy,
		NoProxy:      cfg.HTTP.NoProxy,
		InsecureTLS:  cfg.HTTP.InsecureTLS,
		Cache:        store,
		CacheTTL:     cfg.Cache.DiskTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init search client: %w", err)
	}

	limiter := worker.NewLimiter(cfg.Concurrency.RatePerHost, cfg.Concurrency.Burst)
	searcher := &rateLimitedSearcher{
		client:  searchClient,
		limiter: limiter,
		baseURL: cfg.Search.BaseURL,
	}

	verifier := verify.NewVerifier(provider, searcher, verify.Options{
		MaxSources:      cfg.Search.MaxSources,
		SnippetMaxChars: cfg.Search.SnippetMaxChars,
	})

	var prober *probe.Prober
	if cfg.Sources.Probe {
		prober = probe.NewProber(probe.Options{
			Timeout:     cfg.Sources.ProbeTimeout,
			MaxWorkers:  cfg.Concurrency.ProbeWorkers,
			UserAgent:   cfg.HTTP.UserAgent,
			Sources:     &cfg.Sources,
			HTTPProxy:   cfg.HTTP.HTTPProxy,
			HTTPSProxy:  cfg.HTTP.HTTPSProxy,
			NoProxy:     cfg.HTTP.NoProxy,
			InsecureTLS: cfg.HTTP.InsecureTLS,
			Cache:       store,
			CacheTTL:    cfg.Cache.DiskTTL,
		})
	}

	return &Pipeline{
		textExtractor:  pdftext.NewExtractor(cfg.Server.MaxUploadBytes, cfg.LLM.MaxTextChars),
		claimExtractor: extract.NewClaimExtractor(provider),
		verifier:       verifier,
		prober:         prober,
		scorer:         score.NewScorer(),
		renderer:       NewRenderer(cfg.Output.IncludeFooter),
		provider:       provider,
		config:         cfg,
	}, nil
}

// rateLimitedSearcher wraps the search client with per-host rate limiting
type rateLimitedSearcher struct {
	client  *search.Client
	limiter *worker.Limiter
	baseURL string
}

func (s *rateLimitedSearcher) Search(ctx context.Context, query string) (*search.Response, error) {
	if err := s.limiter.Wait(ctx, s.baseURL); err != nil {
		return nil, err
	}
	return s.client.Search(ctx, query)
}

// CheckPDF runs the complete fact-check over raw PDF bytes
func (p *Pipeline) CheckPDF(ctx context.Context, filename string, data []byte) (*model.Report, error) {
	// 1. Extract text
	extracted, err := p.textExtractor.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	doc := model.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		Pages:     extracted.Pages,
		SizeBytes: int64(len(data)),
		Chars:     extracted.FullChars,
		Truncated: extracted.Truncated,
	}

	// 2. Extract claims
	claimResult, err := p.claimExtractor.Extract(ctx, extracted.Text)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	claims := claimResult.Claims

	usage := model.LLMUsage{
		Provider:    p.provider.Name(),
		Model:       claimResult.Model,
		TokensUsed:  claimResult.TokensUsed,
		Completions: 1,
	}

	// 3. Verify claims concurrently, preserving claim order
	verifications, verifyTokens := p.verifyAll(ctx, claims)
	usage.TokensUsed += verifyTokens
	usage.Completions += len(claims)

	// 4. Probe cited sources
	if p.prober != nil {
		p.attachSourceChecks(ctx, verifications)
	}

	// 5. Score and assemble
	report := &model.Report{
		Document:      doc,
		CheckedAt:     time.Now().UTC(),
		Claims:        claims,
		Verifications: verifications,
		Summary:       p.scorer.Summarize(doc, verifications),
		LLM:           usage,
	}

	return report, nil
}

// CheckFile reads a PDF from disk and fact-checks it.
// Implements worker.Checker for batch processing.
func (p *Pipeline) CheckFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return p.CheckPDF(ctx, filepath.Base(path), data)
}

// ClaimsPreview extracts claims without verifying them.
// Backs the preview stage of the web UI.
func (p *Pipeline) ClaimsPreview(ctx context.Context, filename string, data []byte) (model.Document, []model.Claim, error) {
	extracted, err := p.textExtractor.Extract(data)
	if err != nil {
		return model.Document{}, nil, fmt.Errorf("extract text: %w", err)
	}

	doc := model.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		Pages:     extracted.Pages,
		SizeBytes: int64(len(data)),
		Chars:     extracted.FullChars,
		Truncated: extracted.Truncated,
	}

	claimResult, err := p.claimExtractor.Extract(ctx, extracted.Text)
	if err != nil {
		return doc, nil, fmt.Errorf("extract claims: %w", err)
	}

	return doc, claimResult.Claims, nil
}

// verifyAll verifies claims with bounded concurrency, keeping results in
// claim order. One claim's failure never aborts the others.
func (p *Pipeline) verifyAll(ctx context.Context, claims []model.Claim) ([]model.Verification, int) {
	if len(claims) == 0 {
		return []model.Verification{}, 0
	}

	workers := p.config.Concurrency.VerifyWorkers
	if workers <= 0 {
		workers = 1
	}

	results := make([]verify.Result, len(claims))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = verify.Result{Verification: model.Verification{
					Claim:       c,
					Status:      model.StatusError,
					Explanation: "context cancelled",
					Confidence:  model.ConfidenceLow,
				}}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = p.verifier.VerifyClaim(ctx, c)
		}(i, claim)
	}

	wg.Wait()

	verifications := make([]model.Verification, len(results))
	tokens := 0
	for i, r := range results {
		verifications[i] = r.Verification
		tokens += r.TokensUsed
	}

	return verifications, tokens
}

// attachSourceChecks probes every distinct cited URL once and attaches
// the results to the verifications that cite it
func (p *Pipeline) attachSourceChecks(ctx context.Context, verifications []model.Verification) {
	seen := make(map[string]bool)
	var urls []string
	for _, v := range verifications {
		for _, u := range v.Sources {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	if len(urls) == 0 {
		return
	}

	checks := p.prober.ProbeAll(ctx, urls)

	byURL := make(map[string]model.SourceCheck, len(checks))
	for _, check := range checks {
		byURL[check.URL] = check
	}

	for i := range verifications {
		for _, u := range verifications[i].Sources {
			if check, ok := byURL[u]; ok {
				verifications[i].SourceChecks = append(verifications[i].SourceChecks, check)
			}
		}
	}
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
