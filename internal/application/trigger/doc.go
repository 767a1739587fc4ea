// Package trigger starts pipeline runs.
//
// The gate guarantees at most one run in flight per process: every trigger
// source (HTTP, CLI, scheduler) goes through the same gate, and a trigger that
// arrives while a run is executing is rejected with domain.ErrRunInProgress
// instead of queued.
//
// The scheduler fires the gate on a fixed interval.
package trigger
