package home

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// thingIDSeparator joins the appliance type and the room path segment.
const thingIDSeparator = "-"

// ThingRef is a parsed appliance thing ID.
type ThingRef struct {
	// Appliance is title-cased: first letter upper, the rest lower.
	Appliance string

	// RoomName is the human-readable room name, underscores turned to spaces.
	RoomName string
}

// FormatThingID builds "<appliance>-<Room_Name>".
func FormatThingID(appliance, roomName string) string {
	return appliance + thingIDSeparator + RoomPathSegment(roomName)
}

// ParseThingID splits id at the first "-" into an appliance type and a
// room name. Both parts must be non-empty.
//
//	ParseThingID("light-Living_Room") // {Appliance: "Light", RoomName: "Living Room"}
func ParseThingID(id string) (ThingRef, error) {
	appliance, room, ok := strings.Cut(id, thingIDSeparator)
	if !ok || appliance == "" || room == "" {
		return ThingRef{}, fmt.Errorf("%w: %q", ErrInvalidThingID, id)
	}
	return ThingRef{
		Appliance: titleCase(appliance),
		RoomName:  RoomNameFromPath(room),
	}, nil
}

// NormalizeThingID replaces spaces with underscores so IDs typed with the
// human room name still match the registry.
func NormalizeThingID(id string) string {
	return strings.ReplaceAll(id, " ", "_")
}

// RoomPathSegment turns a room name into its URL form.
func RoomPathSegment(roomName string) string {
	return strings.ReplaceAll(roomName, " ", "_")
}

// RoomNameFromPath turns a URL room segment back into the room name.
func RoomNameFromPath(segment string) string {
	return strings.ReplaceAll(segment, "_", " ")
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
