package home

import (
	"encoding/json"
	"fmt"
)

// Event types carried on the generic event channel.
const (
	EventPersonMoved     = "personMoved"
	EventToggleAppliance = "toggleAppliance"
	EventRoomsUpdated    = "roomsUpdated"
	EventLogAdded        = "logAdded"
	EventReset           = "reset"
)

// Event is the {eventType, data} payload relayed between clients. Data is
// kept as raw JSON so relayed events reach other clients byte-identical.
type Event struct {
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

// PersonMoved is the data of a personMoved event.
type PersonMoved struct {
	Person string `json:"person"`
	Room   string `json:"room"`
}

// ToggleTarget names the appliance a toggleAppliance event switches.
type ToggleTarget struct {
	Room      string `json:"room"`
	Appliance string `json:"appliance"`
}

// toggleEnvelope is the data of a toggleAppliance event. The target is
// wrapped in a second {eventType, data} layer, which existing clients
// unwrap as event.data.data.
type toggleEnvelope struct {
	EventType string       `json:"eventType"`
	Data      ToggleTarget `json:"data"`
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("home: marshal %T: %v", v, err))
	}
	return b
}

// NewPersonMovedEvent builds a personMoved event. roomSegment may be in
// path form; underscores become spaces.
func NewPersonMovedEvent(personID, roomSegment string) Event {
	return Event{
		EventType: EventPersonMoved,
		Data:      mustMarshal(PersonMoved{Person: personID, Room: RoomNameFromPath(roomSegment)}),
	}
}

// NewToggleApplianceEvent builds a toggleAppliance event for appliance in room.
func NewToggleApplianceEvent(room, appliance string) Event {
	return Event{
		EventType: EventToggleAppliance,
		Data: mustMarshal(toggleEnvelope{
			EventType: EventToggleAppliance,
			Data:      ToggleTarget{Room: room, Appliance: appliance},
		}),
	}
}

// NewRoomsUpdatedEvent builds a roomsUpdated event carrying the full catalog.
func NewRoomsUpdatedEvent(rooms []Room) Event {
	return Event{EventType: EventRoomsUpdated, Data: mustMarshal(CloneRooms(rooms))}
}

// NewLogAddedEvent builds a logAdded event with a free-text message.
func NewLogAddedEvent(message string) Event {
	return Event{EventType: EventLogAdded, Data: mustMarshal(message)}
}

// NewResetEvent builds the normalized reset notification.
func NewResetEvent() Event {
	return Event{EventType: EventReset, Data: mustMarshal(EventReset)}
}

// PersonMoved decodes the data of a personMoved event.
func (e Event) PersonMoved() (PersonMoved, error) {
	var pm PersonMoved
	if err := json.Unmarshal(e.Data, &pm); err != nil {
		return PersonMoved{}, fmt.Errorf("decoding %s data: %w", e.EventType, err)
	}
	return pm, nil
}

// ToggleTarget decodes the data of a toggleAppliance event. A flat
// {room, appliance} payload is accepted as well as the wrapped form.
func (e Event) ToggleTarget() (ToggleTarget, error) {
	var env struct {
		Data *ToggleTarget `json:"data"`
		ToggleTarget
	}
	if err := json.Unmarshal(e.Data, &env); err != nil {
		return ToggleTarget{}, fmt.Errorf("decoding %s data: %w", e.EventType, err)
	}
	if env.Data != nil {
		return *env.Data, nil
	}
	return env.ToggleTarget, nil
}

// Rooms decodes the data of a roomsUpdated event.
func (e Event) Rooms() ([]Room, error) {
	var rooms []Room
	if err := json.Unmarshal(e.Data, &rooms); err != nil {
		return nil, fmt.Errorf("decoding %s data: %w", e.EventType, err)
	}
	return rooms, nil
}
