package trigger

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/aescanero/shortcast/pkg/ports"
	"go.uber.org/zap"
)

// Runner executes one pipeline run
type Runner interface {
	ExecuteRun(ctx context.Context) (*domain.RunRecord, error)
}

// Source identifies what fired a trigger
type Source string

const (
	SourceHTTP     Source = "http"
	SourceCLI      Source = "cli"
	SourceSchedule Source = "schedule"
)

// Status is a snapshot of the gate
type Status struct {
	InProgress    bool       `json:"in_progress"`
	CurrentSource Source     `json:"current_source,omitempty"`
	LastStartedAt *time.Time `json:"last_started_at,omitempty"`
}

// Gate serialises runs
type Gate struct {
	runner  Runner
	metrics ports.MetricsCollector
	logger  *zap.Logger

	busy atomic.Bool

	mu            sync.RWMutex
	currentSource Source
	lastStartedAt *time.Time
}

// NewGate creates a new trigger gate
func NewGate(runner Runner, metrics ports.MetricsCollector, logger *zap.Logger) *Gate {
	return &Gate{
		runner:  runner,
		metrics: metrics,
		logger:  logger,
	}
}

// Trigger executes a run unless one is already in flight
func (g *Gate) Trigger(ctx context.Context, source Source) (*domain.RunRecord, error) {
	if !g.busy.CompareAndSwap(false, true) {
		g.logger.Warn("run trigger rejected, run already in progress",
			zap.String("source", string(source)))
		return nil, domain.ErrRunInProgress
	}
	defer g.release()

	now := time.Now()
	g.mu.Lock()
	g.currentSource = source
	g.lastStartedAt = &now
	g.mu.Unlock()
	g.metrics.SetRunInProgress(true)

	g.logger.Info("run triggered", zap.String("source", string(source)))

	record, err := g.runner.ExecuteRun(ctx)
	if record != nil {
		g.logger.Info("run finished",
			zap.String("source", string(source)),
			zap.String("run_id", record.ID),
			zap.String("status", string(record.Status)))
	}
	return record, err
}

// InProgress reports whether a run is executing
func (g *Gate) InProgress() bool {
	return g.busy.Load()
}

// GetStatus returns the current gate status
func (g *Gate) GetStatus() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Status{InProgress: g.busy.Load()}
	if s.InProgress {
		s.CurrentSource = g.currentSource
	}
	if g.lastStartedAt != nil {
		t := *g.lastStartedAt
		s.LastStartedAt = &t
	}
	return s
}

func (g *Gate) release() {
	g.mu.Lock()
	g.currentSource = ""
	g.mu.Unlock()
	g.metrics.SetRunInProgress(false)
	g.busy.Store(false)
}
