package ffmpeg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/shortcast/pkg/domain"
)

func TestClampSeconds(t *testing.T) {
	assert.Equal(t, 12, ClampSeconds(0))
	assert.Equal(t, 15, ClampSeconds(15))
	assert.Equal(t, 18, ClampSeconds(40))
}

func TestChunkScript(t *testing.T) {
	script := &domain.ScriptDraft{
		Hook:                     "ROBOTS JUST WON!",
		Body:                     "[Visual: lab] Surgeons lost the race. Precision is now automated.",
		Outro:                    "Are you ready?",
		EstimatedDurationSeconds: 12,
	}

	segs := ChunkScript(script)
	require.Len(t, segs, 4)
	assert.Equal(t, "ROBOTS JUST WON", segs[0].Text)
	assert.Equal(t, "Surgeons lost the race", segs[1].Text)
	assert.Equal(t, "Are you ready", segs[3].Text)

	// 14 words over 12 seconds
	assert.InDelta(t, 3*12.0/14.0, segs[0].Duration, 1e-9)
	assert.InDelta(t, 4*12.0/14.0, segs[1].Duration, 1e-9)
}

func TestChunkScript_MinimumLineDuration(t *testing.T) {
	script := &domain.ScriptDraft{
		Hook:                     "Go.",
		Body:                     "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty.",
		EstimatedDurationSeconds: 12,
	}

	segs := ChunkScript(script)
	require.Len(t, segs, 2)
	assert.Equal(t, 1.5, segs[0].Duration)
}

func TestChunkScript_Empty(t *testing.T) {
	assert.Empty(t, ChunkScript(&domain.ScriptDraft{Hook: "[beat]"}))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00:00,000", FormatTimestamp(0))
	assert.Equal(t, "00:00:02,500", FormatTimestamp(2.5))
	assert.Equal(t, "01:01:05,250", FormatTimestamp(3665.25))
}

func TestWriteCaptions(t *testing.T) {
	dir := t.TempDir()
	script := &domain.ScriptDraft{Hook: "Hook line here.", Body: "Body line here.", EstimatedDurationSeconds: 12}

	path, err := WriteCaptions(dir, script)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "captions.srt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"1\n00:00:00,000 --> 00:00:06,000\nHook line here\n\n2\n00:00:06,000 --> 00:00:12,000\nBody line here\n",
		string(data))
}
