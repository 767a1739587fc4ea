// Package pexels sources background footage from Pexels portrait videos.
//
// Sourcing degrades instead of failing: when the key is missing or the API,
// download or normalisation fails, a procedural sequence is rendered and the
// asset is tagged as generated.
package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aescanero/shortcast/internal/application/fallback"
	"github.com/aescanero/shortcast/pkg/adapters/media/ffmpeg"
	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Pexels videos API root
const DefaultBaseURL = "https://api.pexels.com/videos"

// minHeight is the preferred minimum height of a stock file
const minHeight = 1920

// Config configures the sourcer
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Runner     ffmpeg.Runner
	// Rand drives palette selection for procedural visuals
	Rand *rand.Rand
}

// Sourcer produces the background visual sequence
type Sourcer struct {
	apiKey  string
	baseURL string
	client  *http.Client
	runner  ffmpeg.Runner

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSourcer creates a sourcer
func NewSourcer(cfg Config) *Sourcer {
	s := &Sourcer{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		runner:  cfg.Runner,
		rng:     cfg.Rand,
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: 60 * time.Second}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

type videoFile struct {
	Link    string `json:"link"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality string `json:"quality"`
}

type searchResponse struct {
	Videos []struct {
		VideoFiles []videoFile `json:"video_files"`
	} `json:"videos"`
}

var errNoCandidate = errors.New("no stock video candidate")

// Source writes <workdir>/visuals/sequence.mp4
func (s *Sourcer) Source(ctx context.Context, rc *domain.RunContext, script *domain.ScriptDraft) (*domain.VisualAsset, error) {
	dir := filepath.Join(rc.WorkDir, "visuals")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create visuals directory: %w", err)
	}
	target := filepath.Join(dir, "sequence.mp4")
	seconds := ffmpeg.ClampSeconds(script.EstimatedDurationSeconds)

	if s.apiKey != "" {
		err := s.stock(ctx, rc, dir, target, seconds)
		if err == nil {
			rc.Logger.Info("visual sequence built from stock footage", zap.String("path", target))
			return asset(target, seconds, domain.VisualSourceStock), nil
		}
		rc.Logger.Warn("stock video fetch failed, falling back", zap.Error(err))
	} else {
		rc.Logger.Warn("stock footage key missing, generating visual")
	}

	palette := s.palette()
	if err := ffmpeg.GenerateProcedural(ctx, s.runner, target, seconds, palette); err != nil {
		return nil, err
	}
	rc.Logger.Info("visual sequence generated procedurally",
		zap.String("path", target),
		zap.String("palette", palette.Name))
	return asset(target, seconds, domain.VisualSourceGenerated), nil
}

func (s *Sourcer) stock(ctx context.Context, rc *domain.RunContext, dir, target string, seconds int) error {
	candidate, err := s.search(ctx, fmt.Sprintf("%s technology", rc.Config.VideoStyle))
	if err != nil {
		return err
	}

	raw := filepath.Join(dir, "stock.mp4")
	if err := s.download(ctx, candidate.Link, raw); err != nil {
		return err
	}
	return ffmpeg.NormalizeStock(ctx, s.runner, raw, target, seconds)
}

func (s *Sourcer) search(ctx context.Context, query string) (*videoFile, error) {
	params := url.Values{}
	params.Set("orientation", "portrait")
	params.Set("per_page", "5")
	params.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pexels search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels API error %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode pexels response: %w", err)
	}
	if len(body.Videos) == 0 {
		return nil, errNoCandidate
	}
	return pickFile(body.Videos[0].VideoFiles)
}

// pickFile prefers the first file at least minHeight tall, then the first file
func pickFile(files []videoFile) (*videoFile, error) {
	for i := range files {
		if files[i].Height >= minHeight && files[i].Link != "" {
			return &files[i], nil
		}
	}
	if len(files) > 0 && files[0].Link != "" {
		return &files[0], nil
	}
	return nil, errNoCandidate
}

func (s *Sourcer) download(ctx context.Context, link, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed downloading asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed downloading asset: %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create stock file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("failed downloading asset: %w", err)
	}
	return f.Close()
}

func (s *Sourcer) palette() fallback.Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fallback.PickPalette(s.rng)
}

func asset(path string, seconds int, source domain.VisualSource) *domain.VisualAsset {
	return &domain.VisualAsset{
		Path:            path,
		AspectRatio:     domain.AspectRatioVertical,
		DurationSeconds: seconds,
		Source:          source,
	}
}
