// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Triggering a run and reading run history
//   - Reading and saving the brand config
//   - Health checks
//   - Prometheus metrics
package http
