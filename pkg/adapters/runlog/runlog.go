// Package runlog provides the per-run structured event sink.
//
// A Sink wraps the process logger so every entry is also appended to the
// run's log.ndjson file as one JSON object per line. The sink lives exactly
// as long as one run.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the name of the run log inside the run directory
const FileName = "log.ndjson"

// Sink is the structured event sink of one run
type Sink struct {
	// Logger writes to the process log and to the run log file
	Logger *zap.Logger

	file *os.File
	path string
}

// Open creates dir/log.ndjson in append mode and returns a sink scoped to runID
func Open(dir, runID string, base *zap.Logger) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)

	logger := base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	})).With(zap.String("run_id", runID))

	return &Sink{Logger: logger, file: f, path: path}, nil
}

// Detached returns a sink that only writes to the process log.
// Used when the run directory cannot be created.
func Detached(base *zap.Logger, runID string) *Sink {
	return &Sink{Logger: base.With(zap.String("run_id", runID))}
}

// Path returns the log file path, empty for a detached sink
func (s *Sink) Path() string {
	return s.path
}

// Close flushes and closes the run log file
func (s *Sink) Close() error {
	_ = s.Logger.Sync()
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		NameKey:        "logger",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}
