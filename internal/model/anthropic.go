package model

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// AnthropicGenerator implements Generator against the Anthropic Messages API.
// Responses are streamed and accumulated into a single message before being
// returned.
type AnthropicGenerator struct {
	client          anthropic.Client
	maxOutputTokens int64
}

func NewAnthropicGenerator(client anthropic.Client, maxOutputTokens int64) *AnthropicGenerator {
	return &AnthropicGenerator{
		client:          client,
		maxOutputTokens: maxOutputTokens,
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, modelID string, promptText string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: g.maxOutputTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(promptText)),
		},
	}

	stream := g.client.Messages.NewStreaming(ctx, params)
	response := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		err := response.Accumulate(event)
		if err != nil {
			return "", fmt.Errorf("failed to accumulate response content stream: %w", err)
		}
	}
	if stream.Err() != nil {
		return "", fmt.Errorf("failed to stream response: %w", stream.Err())
	}
	if response.StopReason == "" {
		b, err := json.Marshal(response)
		if err != nil {
			log.Printf("error while marshalling corrupt message for inspection: %v", err)
		}
		return "", fmt.Errorf("malformed message: %v", string(b))
	}

	var sb strings.Builder
	for _, contentBlock := range response.Content {
		switch content := contentBlock.AsAny().(type) {
		case anthropic.TextBlock:
			sb.WriteString(content.Text)
		}
	}
	return sb.String(), nil
}
