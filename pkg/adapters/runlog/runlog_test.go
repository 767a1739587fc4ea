package runlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpen_WritesNDJSONAndProcessLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs", "run-1")
	core, observed := observer.New(zap.DebugLevel)

	sink, err := Open(dir, "run-1", zap.New(core))
	require.NoError(t, err)

	sink.Logger.Info("script crafted", zap.Int("words", 38))
	sink.Logger.Warn("stock fetch failed", zap.String("error", "HTTP 500"))
	require.NoError(t, sink.Close())

	f, err := os.Open(filepath.Join(dir, FileName))
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 2)

	assert.Equal(t, "script crafted", lines[0]["message"])
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.EqualValues(t, 38, lines[0]["words"])
	assert.NotEmpty(t, lines[0]["timestamp"])
	assert.Equal(t, "warn", lines[1]["level"])

	assert.Equal(t, 2, observed.Len())
	assert.Equal(t, "run-1", observed.All()[0].ContextMap()["run_id"])
}

func TestDetached(t *testing.T) {
	sink := Detached(zap.NewNop(), "run-2")
	assert.Empty(t, sink.Path())
	assert.NoError(t, sink.Close())
}
