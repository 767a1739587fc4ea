// Package orchestrator implements the run orchestration pipeline.
//
// The manager executes one run end to end:
//   - Resolves the brand config once and fails fast when none was saved
//   - Sequences the stage providers, each consuming its predecessors' output
//   - Applies the declared failure policy of every stage
//   - Finalizes exactly one run record and appends it to history
//   - Publishes lifecycle events to the event bus and records metrics
//
// The validator checks brand configs before they are saved.
package orchestrator
