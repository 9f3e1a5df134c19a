// Package api implements the HTTP API and WebSocket hub of the smart home
// sync core.
//
// This package provides:
//   - Read endpoints over the home store (locations, actions, thing and
//     person descriptions, appliance status, the room catalog)
//   - Command endpoints that relay move and toggle events to every client
//   - The WebSocket hub relaying client events and resets
//   - POST /forward_to_python, the light scheduler forwarder
//   - GET /metrics for Prometheus and GET /api/events over the journal
//
// # Delivery
//
// Events are fire-and-forget. The hub drops a message for a client whose
// buffer is full, never retries, and keeps no backlog for clients that
// connect later. Clients reconcile through GET /api/rooms.
//
// # Errors
//
// 4xx and 5xx replies carry {"error", "code"}. The forwarder answers
// failures with {"message": "Error: ..."}.
package api
