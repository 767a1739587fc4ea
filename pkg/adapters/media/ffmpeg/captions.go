package ffmpeg

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aescanero/shortcast/pkg/domain"
)

// Narration window bounds in seconds
const (
	MinSeconds = 12
	MaxSeconds = 18
)

// minLineSeconds is the shortest time a caption line stays on screen
const minLineSeconds = 1.5

var (
	sentenceBreak  = regexp.MustCompile(`[.!?]`)
	stageDirection = regexp.MustCompile(`\[[^\]]+\]`)
)

// Segment is one caption line and how long it stays on screen
type Segment struct {
	Text     string
	Duration float64
}

// ClampSeconds bounds an estimated duration to the narration window
func ClampSeconds(estimated int) int {
	if estimated < MinSeconds {
		return MinSeconds
	}
	if estimated > MaxSeconds {
		return MaxSeconds
	}
	return estimated
}

// ChunkScript splits the script into sentence segments timed by word share
func ChunkScript(script *domain.ScriptDraft) []Segment {
	text := stageDirection.ReplaceAllString(strings.Join([]string{script.Hook, script.Body, script.Outro}, " "), "")

	var lines []string
	totalWords := 0
	for _, part := range sentenceBreak.Split(text, -1) {
		line := strings.Join(strings.Fields(part), " ")
		if line == "" {
			continue
		}
		lines = append(lines, line)
		totalWords += len(strings.Fields(line))
	}
	if totalWords == 0 {
		return nil
	}

	wps := float64(totalWords) / float64(ClampSeconds(script.EstimatedDurationSeconds))
	segments := make([]Segment, 0, len(lines))
	for _, line := range lines {
		d := float64(len(strings.Fields(line))) / wps
		segments = append(segments, Segment{Text: line, Duration: math.Max(minLineSeconds, d)})
	}
	return segments
}

// FormatTimestamp renders seconds as an SRT timestamp HH:MM:SS,mmm
func FormatTimestamp(seconds float64) string {
	whole := math.Floor(seconds)
	millis := int(math.Floor((seconds - whole) * 1000))
	s := int(whole)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", s/3600, (s%3600)/60, s%60, millis)
}

// BuildSRT renders the caption file body
func BuildSRT(script *domain.ScriptDraft) string {
	var b strings.Builder
	cursor := 0.0
	for i, seg := range ChunkScript(script) {
		start := cursor
		cursor += seg.Duration
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n", i+1, FormatTimestamp(start), FormatTimestamp(cursor), seg.Text)
	}
	return b.String()
}

// WriteCaptions writes dir/captions.srt and returns its path
func WriteCaptions(dir string, script *domain.ScriptDraft) (string, error) {
	path := filepath.Join(dir, "captions.srt")
	if err := os.WriteFile(path, []byte(BuildSRT(script)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write captions: %w", err)
	}
	return path, nil
}
