package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avolkov/claimlens/internal/logger"
	"github.com/avolkov/claimlens/internal/pipeline"
	"github.com/avolkov/claimlens/internal/server"
	"github.com/spf13/cobra"
)

var bindAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fact-checking web server",
	Long: `Serve starts an HTTP server with a PDF upload page and a JSON API:

  GET  /            upload page
  GET  /health      health check
  POST /api/check   multipart PDF upload, full verification, JSON report
  POST /api/claims  multipart PDF upload, claim extraction only

Requires OPENAI_API_KEY (or ANTHROPIC_API_KEY) and TAVILY_API_KEY.

Example:
  claimlens serve
  claimlens serve --addr :9090 --llm-provider anthropic`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&bindAddr, "addr", "0.0.0.0:8080", "listen address")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search cache (force fresh searches)")
	serveCmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip probing cited source URLs")
	serveCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	serveCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	serveCmd.Flags().IntVar(&verifyWorkers, "verify-workers", 4, "concurrent claim verifications")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Server.BindAddr = bindAddr

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	log := logger.New("claimlens")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(log, &cfg.Server, p)
	return srv.Run(ctx)
}
