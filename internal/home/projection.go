package home

import (
	"fmt"
)

// Projection is a client-side view of the home rebuilt only from relayed
// events. Each viewer keeps its own; the server never holds one.
//
// It applies personMoved, toggleAppliance, roomsUpdated and reset, and
// ignores every other event type. A Projection is not safe for concurrent use.
type Projection struct {
	Rooms []Room

	// People holds the last known position of every person, including
	// those in the Hallway.
	People map[string]Position

	// HallwayPositions are the positions people return to in the Hallway.
	HallwayPositions map[string]Position
}

// NewProjection creates an empty projection.
func NewProjection() *Projection {
	return &Projection{
		Rooms:            []Room{},
		People:           make(map[string]Position),
		HallwayPositions: make(map[string]Position),
	}
}

// Apply folds ev into the projection. Events naming rooms or appliances
// the projection does not know are rejected and leave it unchanged.
func (p *Projection) Apply(ev Event) error {
	switch ev.EventType {
	case EventPersonMoved:
		pm, err := ev.PersonMoved()
		if err != nil {
			return err
		}
		return p.MovePerson(pm.Person, pm.Room)

	case EventToggleAppliance:
		target, err := ev.ToggleTarget()
		if err != nil {
			return err
		}
		_, err = p.ToggleAppliance(target.Room, target.Appliance)
		return err

	case EventRoomsUpdated:
		rooms, err := ev.Rooms()
		if err != nil {
			return err
		}
		p.Rooms = CloneRooms(rooms)
		return nil

	case EventReset:
		p.Rooms = []Room{}
		for person := range p.People {
			p.People[person] = p.HallwayPositions[person]
		}
		return nil
	}
	return nil
}

// MovePerson removes person from every room, then places them at the
// centre of roomName. Moving to the Hallway only removes them.
func (p *Projection) MovePerson(person, roomName string) error {
	if roomName == Hallway {
		p.removePerson(person)
		p.People[person] = p.HallwayPositions[person]
		return nil
	}

	idx := p.roomIndex(roomName)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomName)
	}

	p.removePerson(person)

	room := &p.Rooms[idx]
	pos := room.Centre()
	if room.People == nil {
		room.People = make(map[string]Position)
	}
	room.People[person] = pos
	p.People[person] = pos
	return nil
}

// ToggleAppliance flips appliance in roomName and returns the new state.
func (p *Projection) ToggleAppliance(roomName, appliance string) (ApplianceState, error) {
	idx := p.roomIndex(roomName)
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", ErrRoomNotFound, roomName)
	}

	room := &p.Rooms[idx]
	state, ok := room.Appliances.Get(appliance)
	if !ok {
		return "", fmt.Errorf("%w: %s in room %s", ErrApplianceNotFound, appliance, roomName)
	}

	next := state.Toggled()
	room.Appliances.Set(appliance, next)
	return next, nil
}

// Locate returns the person's room name or Hallway.
func (p *Projection) Locate(person string) string {
	return LocatePerson(person, p.Rooms)
}

func (p *Projection) removePerson(person string) {
	for i := range p.Rooms {
		delete(p.Rooms[i].People, person)
	}
}

func (p *Projection) roomIndex(name string) int {
	for i := range p.Rooms {
		if p.Rooms[i].Name == name {
			return i
		}
	}
	return -1
}
