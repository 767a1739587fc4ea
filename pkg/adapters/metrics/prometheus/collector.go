package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	runsStarted   prometheus.Counter
	runsCompleted *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	stagesRun     *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	degraded      *prometheus.CounterVec
	runInProgress prometheus.Gauge
	historySize   prometheus.Gauge
}

// NewCollector creates a collector registered on the default registry
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector registered on reg
func NewCollectorWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		runsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "shortcast_runs_started_total",
				Help: "Total number of runs started",
			},
		),
		runsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortcast_runs_completed_total",
				Help: "Total number of runs finalized, by status",
			},
			[]string{"status"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shortcast_run_duration_seconds",
				Help:    "Run duration in seconds",
				Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1200},
			},
			[]string{"status"},
		),
		stagesRun: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortcast_stages_total",
				Help: "Total number of stage executions, by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shortcast_stage_duration_seconds",
				Help:    "Stage duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
			[]string{"stage"},
		),
		degraded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortcast_stage_degraded_total",
				Help: "Total number of stages that substituted a fallback artifact",
			},
			[]string{"stage"},
		),
		runInProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shortcast_run_in_progress",
				Help: "1 while a run is in flight",
			},
		),
		historySize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "shortcast_history_size",
				Help: "Number of records in run history",
			},
		),
	}
}

// RecordRunStarted counts a started run
func (c *Collector) RecordRunStarted() {
	c.runsStarted.Inc()
}

// RecordRunCompleted counts a finalized run and observes its duration
func (c *Collector) RecordRunCompleted(status string, duration time.Duration) {
	c.runsCompleted.WithLabelValues(status).Inc()
	c.runDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordStage counts a stage execution and observes its duration
func (c *Collector) RecordStage(stage string, outcome string, duration time.Duration) {
	c.stagesRun.WithLabelValues(stage, outcome).Inc()
	c.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordDegraded counts a stage that fell back to a substitute artifact
func (c *Collector) RecordDegraded(stage string) {
	c.degraded.WithLabelValues(stage).Inc()
}

// SetRunInProgress flips the in-flight gauge
func (c *Collector) SetRunInProgress(inProgress bool) {
	if inProgress {
		c.runInProgress.Set(1)
		return
	}
	c.runInProgress.Set(0)
}

// SetHistorySize records the current history length
func (c *Collector) SetHistorySize(size int) {
	c.historySize.Set(float64(size))
}
