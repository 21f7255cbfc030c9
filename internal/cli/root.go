package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "Claimlens - PDF fact checking against current web evidence",
	Long: `Claimlens extracts factual claims from PDF documents and verifies
each one against current web sources.

It extracts the document text, asks a language model for the specific
verifiable claims (statistics, dates, financial figures, technical and
scientific facts), searches the web for evidence, and has the model
judge each claim as verified, inaccurate, or false.

Verdicts describe agreement with retrieved evidence, not ground truth.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Claimlens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimlens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	// A local .env is a convenient place for API keys during development
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.claimlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CLAIMLENS_*
	viper.SetEnvPrefix("CLAIMLENS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// resolveAPIKeys fills provider and search credentials from the
// environment. Keys never come from config files.
func resolveAPIKeys(provider string) (llmKey, tavilyKey string, err error) {
	switch provider {
	case "openai":
		llmKey = os.Getenv("OPENAI_API_KEY")
		if llmKey == "" {
			return "", "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		llmKey = os.Getenv("ANTHROPIC_API_KEY")
		if llmKey == "" {
			return "", "", fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
	default:
		return "", "", fmt.Errorf("unknown LLM provider: %s", provider)
	}

	tavilyKey = os.Getenv("TAVILY_API_KEY")
	if tavilyKey == "" {
		return "", "", fmt.Errorf("TAVILY_API_KEY environment variable not set")
	}

	return llmKey, tavilyKey, nil
}
