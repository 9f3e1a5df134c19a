package home

import "errors"

// Domain errors for the home package.
//
//	if errors.Is(err, home.ErrThingNotFound) {
//	    // respond 404
//	}
var (
	// ErrThingNotFound is returned when no thing description has the requested ID.
	ErrThingNotFound = errors.New("home: thing not found")

	// ErrPersonNotFound is returned when no person description has the requested ID.
	ErrPersonNotFound = errors.New("home: person not found")

	// ErrRoomNotFound is returned when the room catalog has no room with the requested name.
	ErrRoomNotFound = errors.New("home: room not found")

	// ErrApplianceNotFound is returned when a room has no appliance with the requested name.
	ErrApplianceNotFound = errors.New("home: appliance not found")

	// ErrInvalidThingID is returned when a thing ID is not "<Appliance>-<Room_Name>".
	ErrInvalidThingID = errors.New("home: invalid thing id")

	// ErrInvalidThingDescription is returned when an upserted description has no thingID.
	ErrInvalidThingDescription = errors.New("home: invalid thing description")

	// ErrInvalidAppliances is returned when an appliances object cannot be decoded.
	ErrInvalidAppliances = errors.New("home: invalid appliances")
)
