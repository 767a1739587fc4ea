package llm

import "context"

// Request is a single-turn completion request
type Request struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client completes prompts
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
