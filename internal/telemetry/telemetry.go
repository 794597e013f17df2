// Package telemetry exports per-turn trace spans over OTLP/HTTP.
package telemetry

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "confab"
	serviceVersion = "1.0.0"
)

// Config holds the configuration for telemetry
type Config struct {
	Enabled  bool
	Endpoint string // OTLP/HTTP collector endpoint, e.g. http://localhost:4318
}

// Provider manages the trace pipeline. A disabled or nil provider is a no-op.
type Provider struct {
	enabled  bool
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewProvider creates a telemetry provider. When disabled, no exporter is
// constructed and all recording methods are no-ops.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if !config.Enabled {
		log.Printf("Telemetry disabled")
		return &Provider{}, nil
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(
		otlptracehttp.WithEndpointURL(config.Endpoint),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	log.Printf("Telemetry enabled, exporting to %s", config.Endpoint)

	return &Provider{
		enabled:  true,
		provider: tp,
		tracer:   tp.Tracer("github.com/rfoley/confab"),
	}, nil
}

// Shutdown flushes pending spans and shuts down the trace pipeline
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || !p.enabled {
		return nil
	}
	if err := p.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down telemetry provider: %w", err)
	}
	return nil
}

// TurnTelemetry holds telemetry data for one conversation turn
type TurnTelemetry struct {
	ConversationID string
	TurnID         string
	TurnIndex      int
	ModelID        string
	PromptBytes    int
	ResponseBytes  int
}

// RecordTurn emits a span for a completed turn
func (p *Provider) RecordTurn(ctx context.Context, turn TurnTelemetry) {
	if p == nil || !p.enabled {
		return
	}

	_, span := p.tracer.Start(ctx, "chat.turn", trace.WithAttributes(
		attribute.String("conversation.id", turn.ConversationID),
		attribute.String("turn.id", turn.TurnID),
		attribute.Int("turn.index", turn.TurnIndex),
		attribute.String("model.id", turn.ModelID),
		attribute.Int("prompt.bytes", turn.PromptBytes),
		attribute.Int("response.bytes", turn.ResponseBytes),
	))
	span.End()
}

// NewConversationID generates a new conversation UUID
func NewConversationID() string {
	return uuid.New().String()
}

// NewTurnID generates a new turn UUID
func NewTurnID() string {
	return uuid.New().String()
}
