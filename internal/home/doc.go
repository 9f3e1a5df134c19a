// Package home holds the authoritative smart home model and the pure logic
// derived from it.
//
// The Store owns the thing registry, the per-room description buckets, the
// people registry and the room catalog. LocatePerson and DeriveActions
// compute where a person is and what they can do over a catalog snapshot.
// Event builds and decodes the payloads relayed between clients, and
// Projection shows how a client folds those events into its own view.
//
// Thing IDs follow "<Appliance>-<Room_Name>"; FormatThingID and
// ParseThingID are the only places that encode or decode them.
//
// Appliance ON/OFF state lives in each client's rooms. The server only
// learns it when a client reports its catalog, so the store never flips an
// appliance itself.
package home
