// Package events provides event bus implementations for run lifecycle events.
//
// Implementations:
//   - redis: Redis Streams, every subscriber reads the full stream
//   - memory: In-memory for testing and single-process deployments
package events
