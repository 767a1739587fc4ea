package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing is returned when a run starts before any brand config was saved
	ErrConfigMissing = errors.New("configuration missing: set brand color, tone, and video style once")

	// ErrPublishFailed is the message recorded when publishing fails
	ErrPublishFailed = errors.New("publish failed: check credentials")

	// ErrRunInProgress is returned when a trigger fires while another run is in flight
	ErrRunInProgress = errors.New("a run is already in progress")
)

// StageError is a fatal stage failure. It aborts the run and is returned to the caller.
type StageError struct {
	Stage RunState
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
