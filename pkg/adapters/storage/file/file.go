package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
)

const (
	configFile  = "config.json"
	historyFile = "runs/history.json"
	latestFile  = "runs/latest.json"
)

// Store implements ConfigStore and RunStore with JSON documents under a data root
type Store struct {
	root   string
	limit  int
	logger *zap.Logger

	// serialises read-modify-write cycles within this process
	mu sync.Mutex
}

// NewStore creates a file store rooted at root, keeping at most limit history records
func NewStore(root string, limit int, logger *zap.Logger) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("data root is required")
	}
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	if err := os.MkdirAll(filepath.Join(root, "runs"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data root: %w", err)
	}
	return &Store{root: root, limit: limit, logger: logger}, nil
}

// Get returns the saved brand config, or nil if none was saved
func (s *Store) Get(ctx context.Context) (*domain.BrandConfig, error) {
	var cfg *domain.BrandConfig
	found, err := s.readJSON(configFile, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if !found {
		return nil, nil
	}
	return cfg, nil
}

// Upsert merges the patch into defaults and the saved config and persists the result
func (s *Store) Upsert(ctx context.Context, patch domain.BrandConfigPatch) (*domain.BrandConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	merged := domain.MergeBrandConfig(existing, patch)
	if err := s.writeJSON(configFile, merged); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	s.logger.Debug("brand config saved", zap.String("channel", merged.ChannelName))
	return &merged, nil
}

// Append prepends the record to history.json, truncates it and then rewrites latest.json
func (s *Store) Append(ctx context.Context, record *domain.RunRecord) error {
	if record == nil {
		return fmt.Errorf("run record is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.History(ctx)
	if err != nil {
		return err
	}

	history = append([]*domain.RunRecord{record}, history...)
	if len(history) > s.limit {
		history = history[:s.limit]
	}

	if err := s.writeJSON(historyFile, history); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	if err := s.writeJSON(latestFile, record); err != nil {
		return fmt.Errorf("failed to save latest run: %w", err)
	}

	s.logger.Debug("run appended",
		zap.String("run_id", record.ID),
		zap.String("status", string(record.Status)),
		zap.Int("history_size", len(history)))

	return nil
}

// Latest returns the most recent record, or nil
func (s *Store) Latest(ctx context.Context) (*domain.RunRecord, error) {
	var rec *domain.RunRecord
	if _, err := s.readJSON(latestFile, &rec); err != nil {
		return nil, fmt.Errorf("failed to read latest run: %w", err)
	}
	return rec, nil
}

// History returns all stored records, newest first
func (s *Store) History(ctx context.Context) ([]*domain.RunRecord, error) {
	var history []*domain.RunRecord
	if _, err := s.readJSON(historyFile, &history); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if history == nil {
		history = []*domain.RunRecord{}
	}
	return history, nil
}

// readJSON decodes the document into v. It reports false if the file does not exist.
func (s *Store) readJSON(rel string, v interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.root, rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// writeJSON writes the document through a temp file and rename
func (s *Store) writeJSON(rel string, v interface{}) error {
	target := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, target)
}
