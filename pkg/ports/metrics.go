package ports

import "time"

// MetricsCollector records run and stage metrics
type MetricsCollector interface {
	RecordRunStarted()
	RecordRunCompleted(status string, duration time.Duration)
	RecordStage(stage string, outcome string, duration time.Duration)
	RecordDegraded(stage string)
	SetRunInProgress(inProgress bool)
	SetHistorySize(size int)
}
