package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Records(t *testing.T) {
	c := NewCollectorWithRegistry(prometheus.NewRegistry())

	c.RecordRunStarted()
	c.RecordRunCompleted("failed", 3*time.Second)
	c.RecordStage("rendering", "completed", time.Second)
	c.RecordStage("rendering", "completed", time.Second)
	c.RecordDegraded("visualizing")
	c.SetRunInProgress(true)
	c.SetHistorySize(7)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runsCompleted.WithLabelValues("failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.stagesRun.WithLabelValues("rendering", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.degraded.WithLabelValues("visualizing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runInProgress))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.historySize))

	c.SetRunInProgress(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.runInProgress))
}
