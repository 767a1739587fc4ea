package ffmpeg

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/shortcast/internal/application/fallback"
	"github.com/aescanero/shortcast/pkg/domain"
)

func testRunContext(t *testing.T) *domain.RunContext {
	return &domain.RunContext{
		Config:  domain.DefaultBrandConfig(),
		RunID:   "r1",
		WorkDir: filepath.Join(t.TempDir(), "runs", "r1"),
		Logger:  zap.NewNop(),
	}
}

func TestRender(t *testing.T) {
	runner := &fakeRunner{}
	rc := testRunContext(t)
	script := &domain.ScriptDraft{Hook: "HELLO.", Body: "World is new.", EstimatedDurationSeconds: 14}

	out, err := NewRenderer(runner, "").Render(context.Background(), rc,
		&domain.VisualAsset{Path: "/tmp/visual.mp4"},
		&domain.VoiceoverAsset{Path: "/tmp/voice.mp3"},
		script)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rc.WorkDir, VideoFile), out)
	assert.FileExists(t, out)
	assert.FileExists(t, filepath.Join(rc.WorkDir, "captions.srt"))

	args := runner.last()
	assert.Equal(t, "/tmp/visual.mp4", args[1])
	assert.Equal(t, "/tmp/voice.mp3", args[3])
	filter := argAfter(args, "-filter_complex")
	assert.Contains(t, filter, "color=0x12F7FF@0.75")
	assert.Contains(t, filter, "color=0xFF2E63@0.6")
	assert.Contains(t, filter, "captions.srt")
	assert.Contains(t, filter, "hue=s=1.35")
}

func TestRender_RunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	_, err := NewRenderer(runner, "").Render(context.Background(), testRunContext(t),
		&domain.VisualAsset{}, &domain.VoiceoverAsset{}, &domain.ScriptDraft{Hook: "x."})
	assert.ErrorContains(t, err, "video assembly failed")
}

func TestThumbnail(t *testing.T) {
	runner := &fakeRunner{}
	rc := testRunContext(t)
	require.NoError(t, mkdir(rc.WorkDir))

	thumb, err := NewRenderer(runner, "/fonts/Bold.ttf").Thumbnail(context.Background(), rc, "/tmp/short.mp4",
		&domain.ScriptDraft{Hook: "robots won't wait [SFX: boom]"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rc.WorkDir, ThumbnailFile), thumb.Path)

	args := runner.last()
	assert.Equal(t, "1", argAfter(args, "-vframes"))
	filter := argAfter(args, "-vf")
	assert.Contains(t, filter, `text='ROBOTS WON'\''T WAIT'`)
	assert.Contains(t, filter, "fontfile='/fonts/Bold.ttf'")
	assert.Contains(t, filter, "color=0x12F7FF@0.15")
	assert.NotContains(t, filter, "SFX")
}

func TestThumbnail_NamedFontWithoutFile(t *testing.T) {
	runner := &fakeRunner{}
	rc := testRunContext(t)
	require.NoError(t, mkdir(rc.WorkDir))

	_, err := NewRenderer(runner, "").Thumbnail(context.Background(), rc, "/tmp/short.mp4", &domain.ScriptDraft{Hook: "HI"})
	require.NoError(t, err)
	assert.Contains(t, argAfter(runner.last(), "-vf"), "font=Montserrat-Bold")
}

func TestGenerateProcedural(t *testing.T) {
	runner := &fakeRunner{}
	out := filepath.Join(t.TempDir(), "sequence.mp4")
	palette := fallback.PickPalette(rand.New(rand.NewSource(1)))

	require.NoError(t, GenerateProcedural(context.Background(), runner, out, 14, palette))

	args := runner.last()
	assert.Equal(t, "lavfi", argAfter(args, "-f"))
	assert.True(t, strings.HasPrefix(argAfter(args, "-i"), "color=c="+palette.Background))
	assert.Equal(t, "14", argAfter(args, "-t"))
	assert.Contains(t, argAfter(args, "-vf"), palette.Stripe)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\:b'\''c\\d`, escape(`a:b'c\d`))
}
