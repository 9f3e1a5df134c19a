// Package relay turns move and toggle commands into home events and emits
// them to every connected client.
//
// Commands are fire-and-forget. The relay never mutates the home model:
// a move does not check that the person or room exists, and a toggle does
// not flip the stored appliance state. Clients apply the events to their
// own projections.
//
// Commands arrive over HTTP (see package api) and, when MQTT is enabled,
// on <prefix>/command/move and <prefix>/command/toggle.
package relay
