package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RunStatus is the terminal status of a run
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// DefaultHistoryLimit is the number of records kept in history
const DefaultHistoryLimit = 30

// RunRecord is one execution of the pipeline. It is frozen once appended to history.
type RunRecord struct {
	ID          string          `json:"id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Status      RunStatus       `json:"status"`
	Topic       *TopicIdea      `json:"topic,omitempty"`
	Script      *ScriptDraft    `json:"script,omitempty"`
	Voiceover   *VoiceoverAsset `json:"voiceover,omitempty"`
	Visual      *VisualAsset    `json:"visual,omitempty"`
	VideoPath   string          `json:"video_path,omitempty"`
	Thumbnail   *ThumbnailAsset `json:"thumbnail,omitempty"`
	Upload      *UploadMetadata `json:"upload,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Clone returns a deep copy of the record
func (r *RunRecord) Clone() (*RunRecord, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run record: %w", err)
	}
	var out RunRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
	}
	return &out, nil
}

// RunContext is handed to every stage provider for the lifetime of one run
type RunContext struct {
	// Config is a snapshot taken once at run start
	Config  BrandConfig
	RunID   string
	WorkDir string
	// Logger writes to the process log and to the run's log.ndjson
	Logger *zap.Logger
}
