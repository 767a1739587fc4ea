package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for shortcast
type Config struct {
	// Server configuration
	HTTPPort int    `env:"SHORTCAST_HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"SHORTCAST_GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DataRoot holds config.json, runs/ and per-run artifacts
	DataRoot string `env:"DATA_ROOT" envDefault:"data"`

	// Storage configuration
	Store StoreConfig

	// Redis configuration
	Redis RedisConfig

	// LLM configuration
	LLM LLMConfig

	// Stage provider configuration
	Providers ProviderConfig

	// YouTube publishing credentials
	YouTube YouTubeConfig

	// Scheduler configuration
	Schedule ScheduleConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// StoreConfig selects the run/config store and the event bus
type StoreConfig struct {
	Backend      string `env:"STORE_BACKEND" envDefault:"file"`
	EventBackend string `env:"EVENT_BACKEND" envDefault:"memory"`
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"30"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASS"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"shortcast"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// LLMConfig holds the script writing model configuration
type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"anthropic"`
	APIKey   string `env:"ANTHROPIC_API_KEY"`
	BaseURL  string `env:"ANTHROPIC_BASE_URL"`

	RequestTimeout time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"120s"`

	Model       string  `env:"LLM_MODEL" envDefault:"claude-sonnet-4-5"`
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.8"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"1024"`
}

// ProviderConfig holds the keys of the research, voice and visuals providers.
// A missing key degrades research and visuals and fails voice synthesis.
type ProviderConfig struct {
	NewsAPIKey       string        `env:"NEWS_API_KEY"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL"`
	OpenAIVoiceModel string        `env:"OPENAI_VOICE_MODEL" envDefault:"gpt-4o-mini-tts"`
	PexelsAPIKey     string        `env:"PEXELS_API_KEY"`
	HTTPTimeout      time.Duration `env:"PROVIDER_HTTP_TIMEOUT" envDefault:"60s"`

	FFmpegPath        string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	ThumbnailFontFile string `env:"THUMBNAIL_FONT_FILE"`
}

// YouTubeConfig holds the OAuth client and refresh token
type YouTubeConfig struct {
	ClientID     string `env:"YOUTUBE_CLIENT_ID"`
	ClientSecret string `env:"YOUTUBE_CLIENT_SECRET"`
	RefreshToken string `env:"YOUTUBE_REFRESH_TOKEN"`
}

// ScheduleConfig holds the run scheduler configuration
type ScheduleConfig struct {
	// Interval between scheduled runs, 0 disables the scheduler
	Interval time.Duration `env:"SCHEDULE_INTERVAL" envDefault:"0s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}

	if c.DataRoot == "" {
		return fmt.Errorf("data root is required")
	}

	// Validate storage config
	switch c.Store.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("unsupported store backend: %s (must be file or redis)", c.Store.Backend)
	}
	switch c.Store.EventBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported event backend: %s (must be memory or redis)", c.Store.EventBackend)
	}
	if c.Store.HistoryLimit < 1 {
		return fmt.Errorf("history limit must be at least 1")
	}

	// Validate Redis config
	if c.UsesRedis() && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	// Validate LLM config
	if c.LLM.Provider != "anthropic" {
		return fmt.Errorf("unsupported LLM provider: %s (only 'anthropic' is supported)", c.LLM.Provider)
	}

	if c.Schedule.Interval < 0 {
		return fmt.Errorf("schedule interval must not be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// UsesRedis reports whether any backend needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.Store.Backend == "redis" || c.Store.EventBackend == "redis"
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}
