package home

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Hallway is the implicit location of a person who is in no room.
const Hallway = "Hallway"

// Room sides in the floor layout.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Thing types with special handling in the registry.
const (
	ThingTypePerson = "Person"
	ThingTypeRoom   = "Room"
)

// RoomBucketDescription is the description text of every room bucket.
const RoomBucketDescription = "A room in a simulated smart home"

// Position is a person's layout coordinate inside a room.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Room is one instantiated room of the floor plan.
//
// X, Y, W and H are layout numbers the core only reads to place people at
// the room centre. People maps person ID to position; a person appears in
// at most one room's People.
type Room struct {
	Name       string              `json:"name"`
	Side       string              `json:"side,omitempty"`
	RoomType   string              `json:"roomType,omitempty"`
	X          float64             `json:"x"`
	Y          float64             `json:"y"`
	W          float64             `json:"w"`
	H          float64             `json:"h"`
	Appliances Appliances          `json:"appliances"`
	People     map[string]Position `json:"people,omitempty"`
}

// Centre returns the midpoint of the room's layout rectangle.
func (r Room) Centre() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// HasPerson reports whether personID is in the room.
func (r Room) HasPerson(personID string) bool {
	_, ok := r.People[personID]
	return ok
}

// Clone returns a deep copy of r.
func (r Room) Clone() Room {
	c := r
	c.Appliances = r.Appliances.Clone()
	if r.People != nil {
		c.People = make(map[string]Position, len(r.People))
		for k, v := range r.People {
			c.People[k] = v
		}
	}
	return c
}

// CloneRooms deep-copies a room slice. The result is never nil.
func CloneRooms(rooms []Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	return out
}

// Link is an HTTP method and URL a client can call.
type Link struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// ThingDescription is the capability record of an appliance or person.
//
// A description decoded from JSON keeps the posted object verbatim and
// encodes back to it, members the fields below do not name included. The
// typed fields are read from that object: Actions stays raw because
// appliances carry {"toggle":{method,url}} while people carry a bare
// {method,url} link, and Status is set only when the posted status is an
// object.
type ThingDescription struct {
	ThingID     string          `json:"thingID"`
	ThingType   string          `json:"thingType"`
	RoomName    string          `json:"roomName,omitempty"`
	Description string          `json:"description"`
	Actions     json.RawMessage `json:"actions,omitempty"`
	Status      *Link           `json:"status,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes a description object without rejecting members
// of unexpected shape.
func (d *ThingDescription) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed JSON", ErrInvalidThingDescription)
	}
	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return fmt.Errorf("%w: not an object", ErrInvalidThingDescription)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidThingDescription, err)
	}

	*d = ThingDescription{
		ThingID:     obj.Get("thingID").String(),
		ThingType:   obj.Get("thingType").String(),
		RoomName:    obj.Get("roomName").String(),
		Description: obj.Get("description").String(),
		raw:         compact.Bytes(),
	}
	if actions := obj.Get("actions"); actions.Exists() && actions.Type != gjson.Null {
		d.Actions = json.RawMessage(actions.Raw)
	}
	if status := obj.Get("status"); status.IsObject() {
		d.Status = &Link{
			Method: status.Get("method").String(),
			URL:    status.Get("url").String(),
		}
	}
	return nil
}

// MarshalJSON returns the decoded object when there is one, otherwise the
// typed fields.
func (d ThingDescription) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	type plain ThingDescription
	return json.Marshal(plain(d))
}

// IsPerson reports whether the description belongs to the people registry.
func (d ThingDescription) IsPerson() bool {
	return d.ThingType == ThingTypePerson
}

// Clone returns a deep copy of d.
func (d ThingDescription) Clone() ThingDescription {
	c := d
	if d.Actions != nil {
		c.Actions = append(json.RawMessage(nil), d.Actions...)
	}
	if d.Status != nil {
		status := *d.Status
		c.Status = &status
	}
	if d.raw != nil {
		c.raw = append(json.RawMessage(nil), d.raw...)
	}
	return c
}

// RoomDescription groups the thing descriptions registered for one room.
type RoomDescription struct {
	RoomName          string                      `json:"roomName"`
	ThingType         string                      `json:"thingType"`
	Description       string                      `json:"description"`
	ThingDescriptions map[string]ThingDescription `json:"thingDescriptions"`
}

func newRoomDescription(roomName string) *RoomDescription {
	return &RoomDescription{
		RoomName:          roomName,
		ThingType:         ThingTypeRoom,
		Description:       RoomBucketDescription,
		ThingDescriptions: make(map[string]ThingDescription),
	}
}

// Clone returns a deep copy of d.
func (d RoomDescription) Clone() RoomDescription {
	c := d
	c.ThingDescriptions = make(map[string]ThingDescription, len(d.ThingDescriptions))
	for id, td := range d.ThingDescriptions {
		c.ThingDescriptions[id] = td.Clone()
	}
	return c
}
