// Package model provides adapters for remote generative-language APIs.
package model

import "context"

// Generator is the remote model capability consumed by a chat session: one
// prompt in, one response out. An empty response with a nil error means the
// model returned nothing; callers decide how to present that.
type Generator interface {
	Generate(ctx context.Context, modelID string, promptText string) (string, error)
}
