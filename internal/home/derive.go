package home

import (
	"net/http"
	"strings"
)

// DefaultBaseURL prefixes action and status URLs when none is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// Action is one call a person can make from their current location.
// Appliance is set on toggle actions only.
type Action struct {
	Method    string `json:"method"`
	Appliance string `json:"appliance,omitempty"`
	URL       string `json:"url"`
}

// LinkBuilder builds the absolute URLs handed to clients.
type LinkBuilder struct {
	base string
}

// NewLinkBuilder returns a builder for base, falling back to
// DefaultBaseURL when base is empty.
func NewLinkBuilder(base string) LinkBuilder {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return LinkBuilder{base: base}
}

// Base returns the URL prefix.
func (l LinkBuilder) Base() string {
	if l.base == "" {
		return DefaultBaseURL
	}
	return l.base
}

// Toggle is the URL toggling a thing.
func (l LinkBuilder) Toggle(thingID string) string {
	return l.Base() + "/things/toggle/" + thingID
}

// Status is the URL reading a thing's live state.
func (l LinkBuilder) Status(thingID string) string {
	return l.Base() + "/things/status/" + thingID
}

// Move is the URL moving a person; roomSegment is already in path form.
func (l LinkBuilder) Move(personID, roomSegment string) string {
	return l.Base() + "/people/move/" + personID + "/" + roomSegment
}

// Location is the URL reading a person's location.
func (l LinkBuilder) Location(personID string) string {
	return l.Base() + "/people/location/" + personID
}

// Actions is the URL listing a person's actions.
func (l LinkBuilder) Actions(personID string) string {
	return l.Base() + "/people/getActions/" + personID
}

// LocatePerson returns the name of the first room holding personID, or
// Hallway when no room does.
func LocatePerson(personID string, rooms []Room) string {
	if r := findPersonRoom(personID, rooms); r != nil {
		return r.Name
	}
	return Hallway
}

// DeriveActions lists what personID can do from where they stand.
//
// In a room: one toggle per appliance in the room's appliance order, then
// a single move to the Hallway. In the Hallway: one move per room in
// catalog order. The result is never nil.
func DeriveActions(personID string, rooms []Room, links LinkBuilder) []Action {
	room := findPersonRoom(personID, rooms)
	if room == nil {
		actions := make([]Action, 0, len(rooms))
		for _, r := range rooms {
			actions = append(actions, Action{
				Method: http.MethodPost,
				URL:    links.Move(personID, RoomPathSegment(r.Name)),
			})
		}
		return actions
	}

	actions := make([]Action, 0, room.Appliances.Len()+1)
	for _, name := range room.Appliances.Names() {
		actions = append(actions, Action{
			Method:    http.MethodPost,
			Appliance: name,
			URL:       links.Toggle(FormatThingID(name, room.Name)),
		})
	}
	return append(actions, Action{
		Method: http.MethodPost,
		URL:    links.Move(personID, Hallway),
	})
}

func findPersonRoom(personID string, rooms []Room) *Room {
	for i := range rooms {
		if rooms[i].HasPerson(personID) {
			return &rooms[i]
		}
	}
	return nil
}
