// Package storage provides config and run history storage implementations.
//
// Implementations:
//   - file: JSON documents under the data root (default)
//   - redis: Redis list for history, keys for latest and config
//   - memory: In-memory for testing
//
// Every implementation keeps history newest first and bounded; appended
// records are copied so callers cannot mutate them afterwards.
package storage
