package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "confab",
	Short: "Interactive chat client for hosted generative-language models",
	Long: `Confab is an interactive command-line chat client. It forwards prompts,
along with a window of recent conversation turns, to a hosted model and keeps
a durable per-conversation history on disk between runs.`,
	PersistentPreRun: loadRootConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func loadRootConfig(_ *cobra.Command, _ []string) {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	loadOptionalFromEnv(&config.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	loadOptionalFromEnv(&config.OpenAIAPIKey, "OPENAI_API_KEY")
	loadOptionalFromEnv(&config.OpenAIBaseURL, "OPENAI_BASE_URL")
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&config.TelemetryEnabled, "telemetry", false, "Export per-turn trace spans over OTLP")
	rootCmd.PersistentFlags().StringVar(&config.OTLPEndpoint, "otlp-endpoint", "http://localhost:4318", "OTLP/HTTP collector endpoint")
}
