package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avolkov/claimlens/internal/model"
	"github.com/avolkov/claimlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON       string
	outMD         string
	timeout       time.Duration
	userAgent     string
	noCache       bool
	noFooter      bool
	noProbe       bool
	llmProvider   string
	llmModel      string
	verifyWorkers int
	httpProxy     string
	httpsProxy    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.pdf>",
	Short: "Fact-check a single PDF and generate a report",
	Long: `Check analyzes a single PDF document to:
- Extract the document text
- Identify specific, verifiable factual claims
- Search the web for current evidence on each claim
- Judge each claim as verified, inaccurate, or false
- Probe cited sources for dead links and authority
- Generate transparent, explainable reports

Requires OPENAI_API_KEY (or ANTHROPIC_API_KEY) and TAVILY_API_KEY.

Example:
  claimlens check whitepaper.pdf
  claimlens check report.pdf --json report.json --md report.md
  claimlens check report.pdf --llm-provider ollama --llm-model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall check timeout (increase for documents with many claims)")
	checkCmd.Flags().StringVar(&userAgent, "ua", "Claimlens/0.1 (+https://github.com/avolkov/claimlens)", "HTTP User-Agent")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search cache (force fresh searches)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip probing cited source URLs")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	checkCmd.Flags().IntVar(&verifyWorkers, "verify-workers", 4, "concurrent claim verifications")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Extracting text and claims...\n")
	}

	report, err := p.CheckFile(ctx, path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims from %d pages\n", report.Summary.Total, report.Document.Pages)
		fmt.Fprintf(os.Stderr, "✓ Calculated accuracy index: %d/100\n", report.Summary.AccuracyIndex)
		fmt.Fprintf(os.Stderr, "✓ Used %d tokens across %d completions (%s/%s)\n",
			report.LLM.TokensUsed, report.LLM.Completions, report.LLM.Provider, report.LLM.Model)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the pipeline configuration from defaults, flags,
// and environment credentials
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Sources.Probe = !noProbe
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	if verifyWorkers > 0 {
		cfg.Concurrency.VerifyWorkers = verifyWorkers
	}

	// API keys come from the environment only
	llmKey, tavilyKey, err := resolveAPIKeys(llmProvider)
	if err != nil {
		return nil, err
	}
	cfg.LLM.APIKey = llmKey
	cfg.Search.APIKey = tavilyKey

	if llmProvider == "ollama" {
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}
