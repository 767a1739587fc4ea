package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aescanero/shortcast/pkg/adapters/runlog"
	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/aescanero/shortcast/pkg/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stages are the stage providers of the pipeline, in execution order
type Stages struct {
	Researcher ports.TopicResearcher
	Writer     ports.ScriptWriter
	Voice      ports.VoiceSynthesizer
	Visuals    ports.VisualSourcer
	Renderer   ports.VideoRenderer
	Thumbnails ports.ThumbnailRenderer
	Metadata   ports.MetadataBuilder
	Publisher  ports.Publisher
}

// Options tune the manager. Zero values use the defaults.
type Options struct {
	// DataRoot holds runs/<id>/ directories
	DataRoot string
	// Now is the clock used for record timestamps and stage durations
	Now func() time.Time
	// NewID generates run ids
	NewID func() string
}

// Manager executes pipeline runs
type Manager struct {
	stages   Stages
	configs  ports.ConfigStore
	runs     ports.RunStore
	eventBus ports.EventBus
	metrics  ports.MetricsCollector
	logger   *zap.Logger

	dataRoot string
	now      func() time.Time
	newID    func() string
}

// NewManager creates a new orchestrator manager
func NewManager(
	stages Stages,
	configs ports.ConfigStore,
	runs ports.RunStore,
	eventBus ports.EventBus,
	metrics ports.MetricsCollector,
	logger *zap.Logger,
	opts Options,
) *Manager {
	m := &Manager{
		stages:   stages,
		configs:  configs,
		runs:     runs,
		eventBus: eventBus,
		metrics:  metrics,
		logger:   logger,
		dataRoot: opts.DataRoot,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if m.dataRoot == "" {
		m.dataRoot = "data"
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = func() string { return uuid.New().String() }
	}
	return m
}

// execution is the mutable state of the run being executed
type execution struct {
	rc     *domain.RunContext
	record *domain.RunRecord
	logger *zap.Logger
}

// ExecuteRun runs the pipeline once. The finalized record is always returned,
// including alongside an error. Only a missing config, a fatal stage failure
// or a persistence failure produce an error; a publish failure is recorded on
// the run and returns nil.
func (m *Manager) ExecuteRun(ctx context.Context) (*domain.RunRecord, error) {
	runID := m.newID()
	workDir := filepath.Join(m.dataRoot, "runs", runID)

	sink, err := runlog.Open(workDir, runID, m.logger)
	if err != nil {
		m.logger.Warn("run log unavailable, logging to process log only",
			zap.String("run_id", runID),
			zap.Error(err))
		sink = runlog.Detached(m.logger, runID)
	}
	defer sink.Close()

	ex := &execution{
		record: &domain.RunRecord{ID: runID, StartedAt: m.now()},
		logger: sink.Logger,
		rc:     &domain.RunContext{RunID: runID, WorkDir: workDir, Logger: sink.Logger},
	}

	m.metrics.RecordRunStarted()
	ex.logger.Info("run started", zap.String("state", string(domain.StateInitializing)))
	m.publish(ctx, runID, domain.EventTypeRunStarted, domain.StateInitializing, nil)

	cfg, err := m.configs.Get(ctx)
	if err != nil {
		ex.record.Error = err.Error()
		return m.finalize(ctx, ex, domain.RunStatusFailed, fmt.Errorf("failed to load brand config: %w", err))
	}
	if err := domain.RequireBrandConfig(cfg); err != nil {
		ex.logger.Warn("brand config missing, aborting run")
		ex.record.Error = err.Error()
		return m.finalize(ctx, ex, domain.RunStatusFailed, err)
	}
	ex.rc.Config = cfg.Clone()
	ex.logger.Info("brand config validated",
		zap.String("state", string(domain.StateConfigValidated)),
		zap.String("channel", cfg.ChannelName),
		zap.String("video_style", string(cfg.VideoStyle)))

	return m.pipeline(ctx, ex)
}

func (m *Manager) pipeline(ctx context.Context, ex *execution) (*domain.RunRecord, error) {
	rc := ex.rc

	topic, err := runStage(ctx, m, ex, domain.StateResearching, func() (*domain.TopicIdea, error) {
		return m.stages.Researcher.Research(ctx, rc)
	})
	if err != nil {
		return m.fail(ctx, ex, domain.StateResearching, err)
	}
	ex.record.Topic = topic
	if topic.Provenance == domain.TopicProvenanceFallback {
		m.degraded(ctx, ex, domain.StateResearching, "trending research unavailable, fallback topic used")
	}

	script, err := runStage(ctx, m, ex, domain.StateScripting, func() (*domain.ScriptDraft, error) {
		return m.stages.Writer.Write(ctx, rc, topic)
	})
	if err != nil {
		return m.fail(ctx, ex, domain.StateScripting, err)
	}
	ex.record.Script = script

	voice, err := runStage(ctx, m, ex, domain.StateSynthesizing, func() (*domain.VoiceoverAsset, error) {
		return m.stages.Voice.Synthesize(ctx, rc, script)
	})
	if err != nil {
		return m.fail(ctx, ex, domain.StateSynthesizing, err)
	}
	ex.record.Voiceover = voice

	visual, err := runStage(ctx, m, ex, domain.StateVisualizing, func() (*domain.VisualAsset, error) {
		return m.stages.Visuals.Source(ctx, rc, script)
	})
	if err != nil {
		return m.fail(ctx, ex, domain.StateVisualizing, err)
	}
	ex.record.Visual = visual
	if visual.Source == domain.VisualSourceGenerated {
		m.degraded(ctx, ex, domain.StateVisualizing, "stock footage unavailable, procedural visual generated")
	}

	videoPath, err := runStage(ctx, m, ex, domain.StateRendering, func() (string, error) {
		return m.stages.Renderer.Render(ctx, rc, visual, voice, script)
	})
	if err != nil {
		return m.fail(ctx, ex, domain.StateRendering, err)
	}
	ex.record.VideoPath = videoPath

	thumbnail, err := runStage(ctx, m, ex, domain.StateThumbnailing, func() (*domain.ThumbnailAsset, error) {
		return m.stages.Thumbnails.Thumbnail(ctx, rc, videoPath, script)
	})
	if err != nil {
		return m.fail(ctx, ex, domain.StateThumbnailing, err)
	}
	ex.record.Thumbnail = thumbnail

	metadata, _ := runStage(ctx, m, ex, domain.StateMetadataBuilt, func() (*domain.UploadMetadata, error) {
		return m.stages.Metadata.Build(rc, topic, script), nil
	})
	ex.record.Upload = metadata

	published, err := runStage(ctx, m, ex, domain.StatePublishing, func() (*domain.PublishResult, error) {
		res, err := m.stages.Publisher.Publish(ctx, rc, videoPath, thumbnail, metadata)
		if err != nil {
			return nil, err
		}
		if res == nil || res.WatchURL == "" {
			return nil, errors.New("publisher returned no watch URL")
		}
		return res, nil
	})
	if err != nil {
		ex.record.Error = domain.ErrPublishFailed.Error()
		return m.finalize(ctx, ex, domain.RunStatusFailed, nil)
	}

	ex.record.Upload.VideoID = published.VideoID
	ex.record.Upload.WatchURL = published.WatchURL
	return m.finalize(ctx, ex, domain.RunStatusSuccess, nil)
}

// runStage wraps one stage call with state logging, metrics and events
func runStage[T any](ctx context.Context, m *Manager, ex *execution, stage domain.RunState, call func() (T, error)) (T, error) {
	logger := ex.logger.With(zap.String("state", string(stage)))
	logger.Info("stage started")
	m.publish(ctx, ex.rc.RunID, domain.EventTypeStageStarted, stage, nil)

	start := m.now()
	out, err := call()
	duration := m.now().Sub(start)

	if err != nil {
		policy := policyOf(stage)
		m.metrics.RecordStage(string(stage), "failed", duration)
		logger.Error("stage failed",
			zap.String("policy", string(policy)),
			zap.Duration("duration", duration),
			zap.Error(err))
		m.publish(ctx, ex.rc.RunID, domain.EventTypeStageFailed, stage, map[string]interface{}{
			"error":  err.Error(),
			"policy": string(policy),
		})
		return out, err
	}

	m.metrics.RecordStage(string(stage), "completed", duration)
	logger.Info("stage completed", zap.Duration("duration", duration))
	m.publish(ctx, ex.rc.RunID, domain.EventTypeStageCompleted, stage, map[string]interface{}{
		"duration_ms": duration.Milliseconds(),
	})
	return out, nil
}

// policyOf returns the declared failure policy of a stage. Undeclared stages are fatal.
func policyOf(stage domain.RunState) domain.FailurePolicy {
	if p, ok := domain.StagePolicies[stage]; ok {
		return p
	}
	return domain.PolicyFatal
}

// fail aborts the run on a stage error
func (m *Manager) fail(ctx context.Context, ex *execution, stage domain.RunState, err error) (*domain.RunRecord, error) {
	if policyOf(stage) == domain.PolicyDegrades {
		ex.logger.Error("degradable stage returned an error instead of a fallback",
			zap.String("state", string(stage)),
			zap.Error(err))
	}
	ex.record.Error = err.Error()
	return m.finalize(ctx, ex, domain.RunStatusFailed, &domain.StageError{Stage: stage, Err: err})
}

func (m *Manager) degraded(ctx context.Context, ex *execution, stage domain.RunState, reason string) {
	m.metrics.RecordDegraded(string(stage))
	ex.logger.Warn("stage degraded",
		zap.String("state", string(stage)),
		zap.String("reason", reason))
	m.publish(ctx, ex.rc.RunID, domain.EventTypeStageDegraded, stage, map[string]interface{}{
		"reason": reason,
	})
}

// finalize stamps the record, appends it to history and reports the outcome.
// The record must not be touched after this returns.
func (m *Manager) finalize(ctx context.Context, ex *execution, status domain.RunStatus, runErr error) (*domain.RunRecord, error) {
	completed := m.now()
	ex.record.CompletedAt = &completed
	ex.record.Status = status

	persistCtx := context.WithoutCancel(ctx)
	var persistErr error
	if err := m.runs.Append(persistCtx, ex.record); err != nil {
		ex.logger.Error("failed to persist run record", zap.Error(err))
		persistErr = fmt.Errorf("failed to persist run record: %w", err)
	} else if history, err := m.runs.History(persistCtx); err == nil {
		m.metrics.SetHistorySize(len(history))
	}

	duration := completed.Sub(ex.record.StartedAt)
	m.metrics.RecordRunCompleted(string(status), duration)

	eventType := domain.EventTypeRunCompleted
	if status != domain.RunStatusSuccess {
		eventType = domain.EventTypeRunFailed
	}
	data := map[string]interface{}{"status": string(status)}
	if ex.record.Error != "" {
		data["error"] = ex.record.Error
	}
	if ex.record.Upload != nil && ex.record.Upload.WatchURL != "" {
		data["watch_url"] = ex.record.Upload.WatchURL
	}
	m.publish(ctx, ex.record.ID, eventType, domain.StateFinalized, data)

	ex.logger.Info("run finalized",
		zap.String("state", string(domain.StateFinalized)),
		zap.String("status", string(status)),
		zap.String("error", ex.record.Error),
		zap.Duration("duration", duration))

	return ex.record, combine(runErr, persistErr)
}

// publish sends a lifecycle event. Bus failures never affect the run.
func (m *Manager) publish(ctx context.Context, runID string, eventType domain.EventType, stage domain.RunState, data map[string]interface{}) {
	if m.eventBus == nil {
		return
	}
	event := domain.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		RunID:     runID,
		Stage:     stage,
		Timestamp: m.now(),
		Data:      data,
	}
	if err := m.eventBus.Publish(context.WithoutCancel(ctx), domain.RunEventsTopic, event); err != nil {
		m.logger.Warn("failed to publish run event",
			zap.String("run_id", runID),
			zap.String("event_type", string(eventType)),
			zap.Error(err))
	}
}

func combine(runErr, persistErr error) error {
	switch {
	case persistErr == nil:
		return runErr
	case runErr == nil:
		return persistErr
	default:
		return errors.Join(runErr, persistErr)
	}
}
