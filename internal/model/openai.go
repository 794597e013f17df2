package model

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIGenerator implements Generator against the Chat Completions API
// (/v1/chat/completions). It works with any OpenAI-compatible endpoint,
// including hosted compatibility layers and local gateways.
type OpenAIGenerator struct {
	client openai.Client
}

func NewOpenAIGenerator(client openai.Client) *OpenAIGenerator {
	return &OpenAIGenerator{client: client}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, modelID string, promptText string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(modelID),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(promptText),
					},
				},
			},
		},
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		// The endpoint answered but produced nothing
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
