// Package ports declares the interfaces the orchestrator depends on: stores,
// stage providers, the event bus and the metrics collector.
package ports
