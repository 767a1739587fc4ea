// Package script implements the script writing stage on top of an LLM client.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aescanero/shortcast/pkg/adapters/llm"
	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
)

// Defaults filled in when the model omits a field
const (
	DefaultHook     = "THE FUTURE IS HERE."
	DefaultBody     = "AI is evolving faster than hype. [Visual: data torrent]"
	DefaultOutro    = "Ready for the upgrade?"
	DefaultDuration = 15
)

const systemPrompt = "You create ultra-engaging AI short-form scripts."

// ErrNoClient is returned when the writer has no LLM client configured
var ErrNoClient = errors.New("LLM API key missing: unable to craft script")

// Config holds writer settings
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Writer writes narration scripts
type Writer struct {
	client llm.Client
	cfg    Config
}

// NewWriter creates a writer. A nil client makes every Write fail.
func NewWriter(client llm.Client, cfg Config) *Writer {
	return &Writer{client: client, cfg: cfg}
}

type scriptPayload struct {
	Hook                     *string  `json:"hook"`
	Body                     *string  `json:"body"`
	Outro                    *string  `json:"outro"`
	EstimatedDurationSeconds *float64 `json:"estimatedDurationSeconds"`
}

// Write asks the model for a script about the topic
func (w *Writer) Write(ctx context.Context, rc *domain.RunContext, topic *domain.TopicIdea) (*domain.ScriptDraft, error) {
	if w.client == nil {
		return nil, ErrNoClient
	}

	raw, err := w.client.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      BuildPrompt(rc.Config, topic),
		Model:       w.cfg.Model,
		Temperature: w.cfg.Temperature,
		MaxTokens:   w.cfg.MaxTokens,
	})
	if err != nil {
		rc.Logger.Warn("script generation failed", zap.Error(err))
		return nil, fmt.Errorf("script generation failed: %w", err)
	}

	draft, err := ParseDraft(raw)
	if err != nil {
		return nil, err
	}

	rc.Logger.Info("script crafted",
		zap.String("hook", draft.Hook),
		zap.Int("estimated_seconds", draft.EstimatedDurationSeconds))
	return draft, nil
}

// BuildPrompt renders the user prompt for a topic
func BuildPrompt(cfg domain.BrandConfig, topic *domain.TopicIdea) string {
	return strings.Join([]string{
		fmt.Sprintf("You are a viral short-form scriptwriter for a futuristic tech channel called %s.", cfg.ChannelName),
		fmt.Sprintf("Tone: %s. Visual style: %s.", cfg.Tone, cfg.VideoStyle),
		"Write a script under 40 words (~15 seconds) with a hook in the first 2 seconds.",
		"Structure: HOOK in caps, 2 rapid-fire fact lines, final kicker question.",
		"Avoid filler. Each sentence <= 11 words. Include stage directions in [brackets] for visuals or SFX.",
		"Topic headline: " + topic.Title,
		"Angle: " + topic.Angle,
		"Sources summary: " + topic.Summary,
		"Return only JSON with keys hook, body, outro, estimatedDurationSeconds.",
	}, "\n")
}

// ParseDraft decodes the model reply, tolerating surrounding prose or code fences
func ParseDraft(raw string) (*domain.ScriptDraft, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("script reply is not JSON: %q", truncate(raw, 80))
	}

	var p scriptPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &p); err != nil {
		return nil, fmt.Errorf("failed to decode script reply: %w", err)
	}

	draft := &domain.ScriptDraft{
		Hook:                     valueOr(p.Hook, DefaultHook),
		Body:                     valueOr(p.Body, DefaultBody),
		Outro:                    valueOr(p.Outro, DefaultOutro),
		EstimatedDurationSeconds: DefaultDuration,
	}
	if p.EstimatedDurationSeconds != nil && *p.EstimatedDurationSeconds > 0 {
		draft.EstimatedDurationSeconds = int(*p.EstimatedDurationSeconds + 0.5)
	}
	draft.FullScript = strings.Join([]string{draft.Hook, draft.Body, draft.Outro}, " ")
	return draft, nil
}

func valueOr(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
