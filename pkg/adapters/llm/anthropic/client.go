// Package anthropic is the Claude implementation of the LLM client.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// DefaultModel is used when a completion names no model
const DefaultModel = "claude-sonnet-4-5"

// DefaultMaxTokens is used when a completion sets no token limit
const DefaultMaxTokens = 1024

// ErrMissingAPIKey is returned when the client is created without a key
var ErrMissingAPIKey = errors.New("anthropic API key is required")

// Options configures the client
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// MaxRetries overrides the SDK retry count when non-nil
	MaxRetries *int
}

// Completion is one single-turn request
type Completion struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client wraps the Anthropic Messages API
type Client struct {
	api    sdk.Client
	logger *zap.Logger
}

// NewClient creates a new Anthropic client
func NewClient(opts *Options, logger *zap.Logger) (*Client, error) {
	if opts == nil || opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}
	if opts.MaxRetries != nil {
		reqOpts = append(reqOpts, option.WithMaxRetries(*opts.MaxRetries))
	}

	return &Client{
		api:    sdk.NewClient(reqOpts...),
		logger: logger,
	}, nil
}

// Complete sends the prompt and returns the concatenated text blocks of the reply
func (c *Client) Complete(ctx context.Context, req Completion) (string, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic completion failed: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}

	c.logger.Debug("completion received",
		zap.String("model", model),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
		zap.Duration("duration", time.Since(start)))

	if out.Len() == 0 {
		return "", errors.New("anthropic completion returned no text")
	}
	return out.String(), nil
}
