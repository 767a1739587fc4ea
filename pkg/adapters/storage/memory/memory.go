package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aescanero/shortcast/pkg/domain"
)

// Store implements ConfigStore and RunStore in memory.
// This is for testing purposes only
type Store struct {
	config  *domain.BrandConfig
	history []*domain.RunRecord
	latest  *domain.RunRecord
	limit   int
	mu      sync.RWMutex
}

// NewStore creates a new in-memory store keeping at most limit records
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &Store{limit: limit}
}

// Get returns the saved brand config
func (s *Store) Get(ctx context.Context) (*domain.BrandConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return nil, nil
	}
	cfg := s.config.Clone()
	return &cfg, nil
}

// Upsert merges the patch into the saved config
func (s *Store) Upsert(ctx context.Context, patch domain.BrandConfigPatch) (*domain.BrandConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := domain.MergeBrandConfig(s.config, patch)
	s.config = &merged
	out := merged.Clone()
	return &out, nil
}

// Append prepends a copy of the record and evicts the oldest past the limit
func (s *Store) Append(ctx context.Context, record *domain.RunRecord) error {
	if record == nil {
		return fmt.Errorf("run record is nil")
	}
	frozen, err := record.Clone()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]*domain.RunRecord, 0, len(s.history)+1)
	history = append(history, frozen)
	history = append(history, s.history...)
	if len(history) > s.limit {
		history = history[:s.limit]
	}
	s.history = history
	s.latest = frozen
	return nil
}

// Latest returns a copy of the most recent record
func (s *Store) Latest(ctx context.Context) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latest.Clone()
}

// History returns copies of all records, newest first
func (s *Store) History(ctx context.Context) ([]*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.RunRecord, 0, len(s.history))
	for _, rec := range s.history {
		cp, err := rec.Clone()
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}
