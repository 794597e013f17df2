package cmd

import (
	"log"
	"os"
)

var config = Config{}

type Config struct {
	// Credentials
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string // Optional override for OpenAI-compatible endpoints

	// Telemetry config
	TelemetryEnabled bool
	OTLPEndpoint     string

	// Chat session options
	Provider      string
	Model         string
	Questions     int
	ContextWindow int
	HistoryDir    string
	ResponseFile  string
	AuditLogFile  string
}

func loadOptionalFromEnv(dest *string, key string) {
	parseOptionalFromEnv(dest, key, func(v string) (string, error) { return v, nil })
}

func parseOptionalFromEnv[T any](dest *T, key string, parseFn func(string) (T, error)) {
	str := os.Getenv(key)
	if str == "" {
		return // Leave default value
	}
	v, err := parseFn(str)
	if err != nil {
		log.Fatalf("failed to parse environment variable '%s' value '%s' as '%T': %v", key, str, *dest, err)
	}
	*dest = v
}
