package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aescanero/shortcast/internal/application/metadata"
	"github.com/aescanero/shortcast/internal/application/orchestrator"
	"github.com/aescanero/shortcast/internal/application/trigger"
	"github.com/aescanero/shortcast/internal/config"
	eventsmemory "github.com/aescanero/shortcast/pkg/adapters/events/memory"
	eventsredis "github.com/aescanero/shortcast/pkg/adapters/events/redis"
	"github.com/aescanero/shortcast/pkg/adapters/llm"
	"github.com/aescanero/shortcast/pkg/adapters/media/ffmpeg"
	"github.com/aescanero/shortcast/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/shortcast/pkg/adapters/publish/youtube"
	"github.com/aescanero/shortcast/pkg/adapters/research/newsapi"
	"github.com/aescanero/shortcast/pkg/adapters/script"
	"github.com/aescanero/shortcast/pkg/adapters/storage/file"
	redisstorage "github.com/aescanero/shortcast/pkg/adapters/storage/redis"
	"github.com/aescanero/shortcast/pkg/adapters/visuals/pexels"
	"github.com/aescanero/shortcast/pkg/adapters/voice/openai"
	"github.com/aescanero/shortcast/pkg/ports"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// dataStore is the combined config and run store every backend implements
type dataStore interface {
	ports.ConfigStore
	ports.RunStore
}

// app holds the wired components shared by the commands
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	redis   *goredis.Client
	store   dataStore
	bus     ports.EventBus
	metrics *prometheus.Collector
	manager *orchestrator.Manager
	gate    *trigger.Gate
}

// loadApp reads the environment and builds the stores only
func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := initLogger(cfg.LogLevel)
	a := &app{cfg: cfg, logger: logger}

	if cfg.UsesRedis() {
		a.redis = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		if err := a.redis.Ping(context.Background()).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	switch cfg.Store.Backend {
	case "redis":
		a.store = redisstorage.NewStore(a.redis, cfg.Redis.KeyPrefix, cfg.Store.HistoryLimit, logger)
	default:
		s, err := file.NewStore(cfg.DataRoot, cfg.Store.HistoryLimit, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		a.store = s
	}

	return a, nil
}

// wirePipeline builds the event bus, stage providers, manager and gate
func (a *app) wirePipeline() error {
	cfg := a.cfg

	switch cfg.Store.EventBackend {
	case "redis":
		a.bus = eventsredis.NewStreamsEventBus(a.redis, cfg.Redis.KeyPrefix, a.logger)
	default:
		a.bus = eventsmemory.NewInMemoryEventBus()
	}

	a.metrics = prometheus.NewCollector()

	var llmClient llm.Client
	if cfg.LLM.APIKey != "" {
		c, err := llm.NewClient(&llm.Config{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Timeout:  cfg.LLM.RequestTimeout,
			Logger:   a.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		llmClient = c
	} else {
		a.logger.Warn("ANTHROPIC_API_KEY not set, script stage will fail")
	}

	httpClient := &http.Client{Timeout: cfg.Providers.HTTPTimeout}
	runner := ffmpeg.NewExecRunner(cfg.Providers.FFmpegPath, a.logger)
	renderer := ffmpeg.NewRenderer(runner, cfg.Providers.ThumbnailFontFile)

	stages := orchestrator.Stages{
		Researcher: newsapi.NewResearcher(newsapi.Config{
			APIKey:     cfg.Providers.NewsAPIKey,
			HTTPClient: httpClient,
		}),
		Writer: script.NewWriter(llmClient, script.Config{
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		}),
		Voice: openai.NewSynthesizer(openai.Config{
			APIKey:     cfg.Providers.OpenAIAPIKey,
			BaseURL:    cfg.Providers.OpenAIBaseURL,
			Model:      cfg.Providers.OpenAIVoiceModel,
			HTTPClient: httpClient,
		}),
		Visuals: pexels.NewSourcer(pexels.Config{
			APIKey:     cfg.Providers.PexelsAPIKey,
			HTTPClient: httpClient,
			Runner:     runner,
		}),
		Renderer:   renderer,
		Thumbnails: renderer,
		Metadata:   metadata.NewBuilder(time.Now),
		Publisher: youtube.NewPublisher(youtube.Config{
			ClientID:     cfg.YouTube.ClientID,
			ClientSecret: cfg.YouTube.ClientSecret,
			RefreshToken: cfg.YouTube.RefreshToken,
		}),
	}

	a.manager = orchestrator.NewManager(
		stages,
		a.store,
		a.store,
		a.bus,
		a.metrics,
		a.logger,
		orchestrator.Options{DataRoot: cfg.DataRoot},
	)
	a.gate = trigger.NewGate(a.manager, a.metrics, a.logger)

	return nil
}

// Close releases the event bus and the Redis connection
func (a *app) Close() {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.logger.Error("event bus close error", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Redis close error", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// printJSON writes v to w as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
