// Package ffmpeg renders media with the ffmpeg binary: the final captioned
// video, the thumbnail, stock footage normalisation and procedural visuals.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// stderrTail is how much ffmpeg stderr is kept for error messages
const stderrTail = 1024

// Runner runs ffmpeg with the given arguments. Output files are always overwritten.
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

// ExecRunner runs a local ffmpeg binary
type ExecRunner struct {
	binary string
	logger *zap.Logger
}

// NewExecRunner creates a runner. An empty binary resolves "ffmpeg" on PATH.
func NewExecRunner(binary string, logger *zap.Logger) *ExecRunner {
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{binary: binary, logger: logger}
}

// Run executes ffmpeg -y args...
func (r *ExecRunner) Run(ctx context.Context, args ...string) error {
	full := append([]string{"-y", "-hide_banner", "-loglevel", "error"}, args...)
	cmd := exec.CommandContext(ctx, r.binary, full...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.logger.Debug("running ffmpeg", zap.Strings("args", full))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail(stderr.String(), stderrTail))
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
