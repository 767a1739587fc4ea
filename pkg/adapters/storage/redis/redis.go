package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store implements ConfigStore and RunStore using Redis
type Store struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	limit  int
}

// NewStore creates a new Redis store. Keys are namespaced with prefix.
func NewStore(client *redis.Client, prefix string, limit int, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = "shortcast"
	}
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &Store{
		client: client,
		logger: logger,
		prefix: prefix,
		limit:  limit,
	}
}

// Get retrieves the brand config
func (s *Store) Get(ctx context.Context) (*domain.BrandConfig, error) {
	data, err := s.client.Get(ctx, s.configKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	var cfg domain.BrandConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Upsert merges the patch into the stored config and saves it
func (s *Store) Upsert(ctx context.Context, patch domain.BrandConfigPatch) (*domain.BrandConfig, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	merged := domain.MergeBrandConfig(existing, patch)
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := s.client.Set(ctx, s.configKey(), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	s.logger.Debug("brand config saved", zap.String("channel", merged.ChannelName))
	return &merged, nil
}

// Append pushes the record onto the history list, trims it and sets latest in one transaction
func (s *Store) Append(ctx context.Context, record *domain.RunRecord) error {
	if record == nil {
		return fmt.Errorf("run record is nil")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.historyKey(), data)
		pipe.LTrim(ctx, s.historyKey(), 0, int64(s.limit-1))
		pipe.Set(ctx, s.latestKey(), data, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append run: %w", err)
	}

	s.logger.Debug("run appended",
		zap.String("run_id", record.ID),
		zap.String("status", string(record.Status)))

	return nil
}

// Latest retrieves the latest run record
func (s *Store) Latest(ctx context.Context) (*domain.RunRecord, error) {
	data, err := s.client.Get(ctx, s.latestKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	var rec domain.RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal latest run: %w", err)
	}
	return &rec, nil
}

// History lists all run records, newest first
func (s *Store) History(ctx context.Context) ([]*domain.RunRecord, error) {
	items, err := s.client.LRange(ctx, s.historyKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	history := make([]*domain.RunRecord, 0, len(items))
	for _, item := range items {
		var rec domain.RunRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			s.logger.Warn("skipping unreadable history entry", zap.Error(err))
			continue
		}
		history = append(history, &rec)
	}

	return history, nil
}

func (s *Store) configKey() string {
	return fmt.Sprintf("%s:config", s.prefix)
}

func (s *Store) historyKey() string {
	return fmt.Sprintf("%s:runs:history", s.prefix)
}

func (s *Store) latestKey() string {
	return fmt.Sprintf("%s:runs:latest", s.prefix)
}
