package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/anthropics/anthropic-sdk-go"
	anthropt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go/v3"
	openaiopt "github.com/openai/openai-go/v3/option"

	"github.com/rfoley/confab/internal/telemetry"
	"github.com/rfoley/confab/internal/transport"
)

// maxOutputTokens caps the length of a single model response
const maxOutputTokens = 4096

func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		log.Println("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		log.Fatal("Forcing shutdown")
	}()

	return ctx
}

func createAnthropicClient(apiKey string) anthropic.Client {
	rateLimitedHTTPClient := &http.Client{
		Transport: transport.WithRateLimiting(nil),
	}
	return anthropic.NewClient(
		anthropt.WithHTTPClient(rateLimitedHTTPClient),
		anthropt.WithAPIKey(apiKey),
	)
}

func createOpenAIClient(apiKey string, baseURL string) openai.Client {
	rateLimitedHTTPClient := &http.Client{
		Transport: transport.WithRateLimiting(nil),
	}
	opts := []openaiopt.RequestOption{
		openaiopt.WithHTTPClient(rateLimitedHTTPClient),
		openaiopt.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, openaiopt.WithBaseURL(baseURL))
	}
	return openai.NewClient(opts...)
}

func createTelemetryProvider(ctx context.Context) (*telemetry.Provider, error) {
	telemetryConfig := telemetry.Config{
		Enabled:  config.TelemetryEnabled,
		Endpoint: config.OTLPEndpoint,
	}
	return telemetry.NewProvider(ctx, telemetryConfig)
}
