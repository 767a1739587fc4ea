package trigger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aescanero/shortcast/pkg/domain"
	"go.uber.org/zap"
)

// Scheduler triggers a run on a fixed interval
type Scheduler struct {
	gate     *Gate
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a new scheduler. A non-positive interval disables it.
func NewScheduler(gate *Gate, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		gate:     gate,
		interval: interval,
		logger:   logger,
	}
}

// Enabled reports whether the scheduler has an interval
func (s *Scheduler) Enabled() bool {
	return s.interval > 0
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	if !s.Enabled() {
		s.logger.Info("run scheduler disabled")
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(s.stopCh)

	s.logger.Info("run scheduler started", zap.Duration("interval", s.interval))
}

// Shutdown stops the scheduler and waits for an in-flight run to finish
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("run scheduler shut down complete")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout")
	}
}

// run is the main scheduling loop
func (s *Scheduler) run(stopCh chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	record, err := s.gate.Trigger(context.Background(), SourceSchedule)
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		s.logger.Info("scheduled run skipped, previous run still in progress")
	case err != nil:
		fields := []zap.Field{zap.Error(err)}
		if record != nil {
			fields = append(fields, zap.String("run_id", record.ID))
		}
		s.logger.Error("scheduled run failed", fields...)
	}
}
