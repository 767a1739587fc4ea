package ports

import (
	"context"

	"github.com/aescanero/shortcast/pkg/domain"
)

// ConfigStore persists the singleton brand config
type ConfigStore interface {
	// Get returns the saved config, or nil when none was saved yet
	Get(ctx context.Context) (*domain.BrandConfig, error)

	// Upsert merges the patch into defaults and the saved config, persists and returns the result
	Upsert(ctx context.Context, patch domain.BrandConfigPatch) (*domain.BrandConfig, error)
}

// RunStore is the append-only bounded run history
type RunStore interface {
	// Append prepends the record to history, evicts past the limit and updates latest
	Append(ctx context.Context, record *domain.RunRecord) error

	// Latest returns the most recent record, or nil when history is empty
	Latest(ctx context.Context) (*domain.RunRecord, error)

	// History returns the records newest first
	History(ctx context.Context) ([]*domain.RunRecord, error)
}
