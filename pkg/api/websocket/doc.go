// Package websocket streams run lifecycle events to dashboard clients.
//
// Clients connect to /api/v1/runs/{id}/ws and receive the run's events as
// JSON text frames. The id "current" streams events for every run.
package websocket
