package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/shortcast/pkg/domain"
)

func testRunContext(t *testing.T) *domain.RunContext {
	cfg := domain.DefaultBrandConfig()
	cfg.VoiceProfile = domain.VoiceProfileNova
	return &domain.RunContext{Config: cfg, RunID: "r1", WorkDir: t.TempDir(), Logger: zap.NewNop()}
}

func TestSynthesize(t *testing.T) {
	var got speechRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("ID3-audio"))
	}))
	defer srv.Close()

	s := NewSynthesizer(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", HTTPClient: srv.Client()})
	rc := testRunContext(t)
	script := &domain.ScriptDraft{FullScript: "one two three four five six seven eight nine ten eleven twelve thirteen"}

	asset, err := s.Synthesize(context.Background(), rc, script)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(rc.WorkDir, "voiceovers", "voiceover.mp3"), asset.Path)
	assert.Equal(t, "mp3", asset.Format)
	assert.Equal(t, 5, asset.DurationSeconds)

	data, err := os.ReadFile(asset.Path)
	require.NoError(t, err)
	assert.Equal(t, "ID3-audio", string(data))

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, "nova", got.Voice)
	assert.Equal(t, speechSpeed, got.Speed)
	assert.Equal(t, script.FullScript, got.Input)
}

func TestSynthesize_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewSynthesizer(Config{APIKey: "bad", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := s.Synthesize(context.Background(), testRunContext(t), &domain.ScriptDraft{FullScript: "hi"})
	assert.EqualError(t, err, "voiceover generation failed: 401")
}

func TestSynthesize_MissingKey(t *testing.T) {
	_, err := NewSynthesizer(Config{}).Synthesize(context.Background(), testRunContext(t), &domain.ScriptDraft{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, "alloy", VoiceFor(domain.VoiceProfileAlloy))
	assert.Equal(t, "orion", VoiceFor(domain.VoiceProfileOrion))
	assert.Equal(t, "alloy", VoiceFor("unknown"))
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, 0, EstimateDuration(""))
	assert.Equal(t, 15, EstimateDuration(strings.Repeat("word ", 39)))
}

