package domain

import "time"

// EventType identifies a run lifecycle event
type EventType string

const (
	EventTypeRunStarted     EventType = "run.started"
	EventTypeRunCompleted   EventType = "run.completed"
	EventTypeRunFailed      EventType = "run.failed"
	EventTypeStageStarted   EventType = "stage.started"
	EventTypeStageCompleted EventType = "stage.completed"
	EventTypeStageDegraded  EventType = "stage.degraded"
	EventTypeStageFailed    EventType = "stage.failed"
)

// RunEventsTopic is the event bus topic carrying run lifecycle events
const RunEventsTopic = "run.events"

// Event is a run lifecycle event published on the event bus
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	RunID     string                 `json:"run_id"`
	Stage     RunState               `json:"stage,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}
