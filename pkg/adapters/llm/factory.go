package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/aescanero/shortcast/pkg/adapters/llm/anthropic"
	"go.uber.org/zap"
)

// Config holds LLM client configuration
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClient creates a new LLM client based on provider
func NewClient(cfg *Config) (Client, error) {
	switch cfg.Provider {
	case "anthropic":
		return newAnthropic(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func newAnthropic(cfg *Config) (Client, error) {
	c, err := anthropic.NewClient(&anthropic.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return anthropicAdapter{c}, nil
}

// anthropicAdapter maps Request onto the anthropic client's call signature
type anthropicAdapter struct {
	c *anthropic.Client
}

func (a anthropicAdapter) Complete(ctx context.Context, req Request) (string, error) {
	return a.c.Complete(ctx, anthropic.Completion{
		System:      req.System,
		Prompt:      req.Prompt,
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
}
