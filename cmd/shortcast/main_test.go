package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/aescanero/shortcast/internal/application/orchestrator"
	"github.com/aescanero/shortcast/pkg/adapters/storage/memory"
	"github.com/aescanero/shortcast/pkg/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		record *domain.RunRecord
		err    error
		want   runSummary
	}{
		{
			name:   "success",
			record: &domain.RunRecord{ID: "r1", Status: domain.RunStatusSuccess},
			want:   runSummary{OK: true, RunID: "r1", Status: domain.RunStatusSuccess},
		},
		{
			name:   "publish failure is absorbed but not ok",
			record: &domain.RunRecord{ID: "r2", Status: domain.RunStatusFailed, Error: domain.ErrPublishFailed.Error()},
			want:   runSummary{OK: false, RunID: "r2", Status: domain.RunStatusFailed, Error: domain.ErrPublishFailed.Error()},
		},
		{
			name:   "propagated failure",
			record: &domain.RunRecord{ID: "r3", Status: domain.RunStatusFailed, Error: "config"},
			err:    domain.ErrConfigMissing,
			want:   runSummary{OK: false, RunID: "r3", Status: domain.RunStatusFailed, Error: domain.ErrConfigMissing.Error()},
		},
		{
			name: "rejected before starting",
			err:  domain.ErrRunInProgress,
			want: runSummary{OK: false, Error: domain.ErrRunInProgress.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.record, tt.err))
		})
	}
}

func TestPrintJSON_RunSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, runSummary{OK: true, RunID: "r1", Status: domain.RunStatusSuccess}))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]interface{}{"ok": true, "run_id": "r1", "status": "success"}, got)
}

func TestLimitHistory(t *testing.T) {
	history := []*domain.RunRecord{{ID: "c"}, {ID: "b"}, {ID: "a"}}

	assert.Len(t, limitHistory(history, 0), 3)
	assert.Len(t, limitHistory(history, 5), 3)
	got := limitHistory(history, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.NotNil(t, limitHistory(nil, 2))
}

func TestReadBrandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.yaml")
	content := `channel_name: Quantum Bytes
tone: analytical
hashtags:
  - "#Qubits"
  - "#Future"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	patch, err := readBrandFile(path)
	require.NoError(t, err)
	require.NotNil(t, patch.ChannelName)
	assert.Equal(t, "Quantum Bytes", *patch.ChannelName)
	require.NotNil(t, patch.Tone)
	assert.Equal(t, domain.ToneAnalytical, *patch.Tone)
	assert.Equal(t, []string{"#Qubits", "#Future"}, patch.Hashtags)
	assert.Nil(t, patch.BrandColor)

	_, err = readBrandFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyBrandPatch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(domain.DefaultHistoryLimit)
	validator := orchestrator.NewValidator()

	name := "Quantum Bytes"
	saved, err := applyBrandPatch(ctx, store, validator, domain.BrandConfigPatch{ChannelName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, saved.ChannelName)
	assert.Equal(t, domain.DefaultBrandConfig().Tone, saved.Tone)

	bad := "not-a-color"
	_, err = applyBrandPatch(ctx, store, validator, domain.BrandConfigPatch{BrandColor: &bad})
	require.Error(t, err)

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBrandConfig().BrandColor, got.BrandColor)
}

func TestWriteYAML_RoundTripsIntoPatch(t *testing.T) {
	cfg := domain.DefaultBrandConfig()

	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, &cfg))

	var patch domain.BrandConfigPatch
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &patch))
	assert.Equal(t, cfg, domain.MergeBrandConfig(nil, patch))
}

func TestInitLogger(t *testing.T) {
	assert.True(t, initLogger("debug").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, initLogger("warn").Core().Enabled(zapcore.InfoLevel))
	assert.True(t, initLogger("bogus").Core().Enabled(zapcore.InfoLevel))
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "run", "history", "config"} {
		assert.True(t, names[want], want)
	}

	cmd, _, err := rootCmd.Find([]string{"config", "apply"})
	require.NoError(t, err)
	assert.Equal(t, "apply", cmd.Name())
}
