package relay

import (
	"context"
	"fmt"

	"github.com/nerrad567/smarthome-sync/internal/home"
)

// Broadcaster delivers an event to every connected client.
type Broadcaster interface {
	Broadcast(ev home.Event)
}

// ThingLookup resolves a registered thing description.
type ThingLookup interface {
	ThingDescription(id string) (home.ThingDescription, error)
}

// Logger defines the logging interface used by the relay.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Relay emits command events to all clients.
type Relay struct {
	things ThingLookup
	out    Broadcaster
	logger Logger
}

// New creates a relay reading thing descriptions from things and emitting
// on out.
func New(things ThingLookup, out Broadcaster) *Relay {
	return &Relay{things: things, out: out, logger: noopLogger{}}
}

// SetLogger sets the logger for the relay.
func (r *Relay) SetLogger(logger Logger) {
	r.logger = logger
}

// MovePerson emits personMoved for personID entering roomName. roomName
// may be in path form ("Living_Room"). Neither the person nor the room is
// checked for existence.
func (r *Relay) MovePerson(ctx context.Context, personID, roomName string) (home.Event, error) {
	if err := ctx.Err(); err != nil {
		return home.Event{}, err
	}
	if personID == "" || roomName == "" {
		return home.Event{}, fmt.Errorf("%w: person and room are required", ErrInvalidCommand)
	}

	ev := home.NewPersonMovedEvent(personID, roomName)
	r.out.Broadcast(ev)
	r.logger.Debug("person move relayed", "person", personID, "room", home.RoomNameFromPath(roomName))
	return ev, nil
}

// ToggleThing emits toggleAppliance for the registered thing thingID.
// An unregistered thing fails with home.ErrThingNotFound and nothing is
// emitted. The stored appliance state is left untouched.
func (r *Relay) ToggleThing(ctx context.Context, thingID string) (home.Event, error) {
	if err := ctx.Err(); err != nil {
		return home.Event{}, err
	}
	if thingID == "" {
		return home.Event{}, fmt.Errorf("%w: thingID is required", ErrInvalidCommand)
	}

	desc, err := r.things.ThingDescription(thingID)
	if err != nil {
		return home.Event{}, err
	}

	ev := home.NewToggleApplianceEvent(desc.RoomName, desc.ThingType)
	r.out.Broadcast(ev)
	r.logger.Debug("appliance toggle relayed", "thing_id", thingID, "room", desc.RoomName)
	return ev, nil
}
