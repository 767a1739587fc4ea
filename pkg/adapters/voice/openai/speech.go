// Package openai implements voice synthesis with the OpenAI speech endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the OpenAI API root
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is the speech model used when none is configured
	DefaultModel = "gpt-4o-mini-tts"

	speechSpeed    = 1.08
	audioFormat    = "mp3"
	wordsPerSecond = 2.6
)

// ErrMissingAPIKey is returned when synthesis is attempted without a key
var ErrMissingAPIKey = errors.New("OpenAI API key missing: unable to synthesize voiceover")

var voices = map[domain.VoiceProfile]string{
	domain.VoiceProfileAlloy: "alloy",
	domain.VoiceProfileNova:  "nova",
	domain.VoiceProfileOrion: "orion",
}

// Config configures the synthesizer
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Synthesizer renders narration audio
type Synthesizer struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewSynthesizer creates a synthesizer
func NewSynthesizer(cfg Config) *Synthesizer {
	s := &Synthesizer{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  cfg.HTTPClient,
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.model == "" {
		s.model = DefaultModel
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 120 * time.Second}
	}
	return s
}

type speechRequest struct {
	Model          string  `json:"model"`
	Voice          string  `json:"voice"`
	Input          string  `json:"input"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

// Synthesize writes <workdir>/voiceovers/voiceover.mp3
func (s *Synthesizer) Synthesize(ctx context.Context, rc *domain.RunContext, script *domain.ScriptDraft) (*domain.VoiceoverAsset, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(speechRequest{
		Model:          s.model,
		Voice:          VoiceFor(rc.Config.VoiceProfile),
		Input:          script.FullScript,
		ResponseFormat: audioFormat,
		Speed:          speechSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		rc.Logger.Warn("voiceover synthesis failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("voiceover generation failed: %d", resp.StatusCode)
	}

	dir := filepath.Join(rc.WorkDir, "voiceovers")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create voiceover directory: %w", err)
	}
	path := filepath.Join(dir, "voiceover."+audioFormat)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create voiceover file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write voiceover: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write voiceover: %w", err)
	}

	asset := &domain.VoiceoverAsset{
		Path:            path,
		Format:          audioFormat,
		DurationSeconds: EstimateDuration(script.FullScript),
	}
	rc.Logger.Info("voiceover generated",
		zap.String("path", path),
		zap.Int("duration_seconds", asset.DurationSeconds))
	return asset, nil
}

// VoiceFor maps a voice profile to an OpenAI voice, defaulting to alloy
func VoiceFor(p domain.VoiceProfile) string {
	if v, ok := voices[p]; ok {
		return v
	}
	return "alloy"
}

// EstimateDuration estimates narration seconds from the word count
func EstimateDuration(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) / wordsPerSecond))
}
