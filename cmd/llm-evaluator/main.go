package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JohannesStutz/llm-evaluator/api/config"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "llm-evaluator",
		Short: "LLM prompt evaluation server",
		Long: `llm-evaluator runs the same input through multiple model and prompt
version combinations, compares the outputs side by side and records
human quality judgments. Results are cached: an identical combination
is never generated twice.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		modelsCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows current configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("Server:")
			fmt.Printf("  Host: %s\n", cfg.Server.Host)
			fmt.Printf("  Port: %d\n", cfg.Server.Port)
			fmt.Println()

			fmt.Println("Database:")
			fmt.Printf("  URL: %s\n", maskSecret(cfg.Database.URL))
			fmt.Println()

			fmt.Println("LLM backend:")
			fmt.Printf("  URL:         %s\n", cfg.LLM.URL)
			fmt.Printf("  API Key:     %s\n", maskSecret(cfg.LLM.APIKey))
			fmt.Printf("  Max Tokens:  %d\n", cfg.LLM.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.LLM.Temperature)
			fmt.Printf("  Status:      %s\n", boolStatus(cfg.IsLLMConfigured()))
			fmt.Println()

			fmt.Println("Environment variables:")
			fmt.Println("  LLMEVAL_SERVER_HOST, LLMEVAL_SERVER_PORT, LLMEVAL_ALLOWED_ORIGINS")
			fmt.Println("  LLMEVAL_POSTGRES_URL")
			fmt.Println("  LLMEVAL_LLM_URL, LLMEVAL_LLM_API_KEY, LLMEVAL_LLM_MAX_TOKENS, LLMEVAL_LLM_TEMPERATURE")
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("llm-evaluator %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}

// maskSecret masks a secret string for display
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "(set)"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// boolStatus returns a status string for a boolean
func boolStatus(b bool) string {
	if b {
		return "configured"
	}
	return "not configured"
}
