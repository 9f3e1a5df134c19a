package home

import (
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Store.
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

// Stats counts the entries held by a Store.
type Stats struct {
	Things           int `json:"things"`
	People           int `json:"people"`
	RoomDescriptions int `json:"roomDescriptions"`
	Rooms            int `json:"rooms"`
}

// Store is the authoritative in-memory home model: the flat thing
// registry, the per-room description buckets, the people registry and the
// room catalog.
//
// Every mutation holds the write lock for its whole duration, so readers
// never see a half-applied upsert or a partially cleared store. Every
// accessor returns copies.
//
// All public methods are thread-safe.
type Store struct {
	mu     sync.RWMutex
	things map[string]ThingDescription
	rooms  map[string]*RoomDescription
	people map[string]ThingDescription
	layout []Room
	logger Logger
}

// NewStore creates an empty Store.
func NewStore() *Store {
	s := &Store{logger: noopLogger{}}
	s.clear()
	return s
}

// SetLogger sets the logger for the store. Call it before the store is shared.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

func (s *Store) clear() {
	s.things = make(map[string]ThingDescription)
	s.rooms = make(map[string]*RoomDescription)
	s.people = make(map[string]ThingDescription)
	s.layout = []Room{}
}

// UpsertThingDescriptions registers descs, replacing any earlier record
// with the same thingID (no field merge).
//
// Every description lands in the flat registry. Persons are also indexed
// in the people registry; everything else goes into the bucket for its
// roomName, created on first use. roomName is not checked against the
// room catalog.
//
// The whole batch is validated first; a description without a thingID
// fails it with ErrInvalidThingDescription and nothing is written.
func (s *Store) UpsertThingDescriptions(descs []ThingDescription) error {
	for i, d := range descs {
		if d.ThingID == "" {
			return fmt.Errorf("%w: entry %d has no thingID", ErrInvalidThingDescription, i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range descs {
		d = d.Clone()
		s.things[d.ThingID] = d

		if d.IsPerson() {
			s.people[d.ThingID] = d
			continue
		}

		bucket, ok := s.rooms[d.RoomName]
		if !ok {
			bucket = newRoomDescription(d.RoomName)
			s.rooms[d.RoomName] = bucket
		}
		bucket.ThingDescriptions[d.ThingID] = d
	}

	s.logger.Debug("thing descriptions upserted", "count", len(descs), "total", len(s.things))
	return nil
}

// SetRoomCatalog replaces the room catalog with a copy of rooms.
func (s *Store) SetRoomCatalog(rooms []Room) {
	layout := CloneRooms(rooms)

	s.mu.Lock()
	s.layout = layout
	s.mu.Unlock()

	s.logger.Debug("room catalog replaced", "rooms", len(layout))
}

// Reset empties all four structures in one step.
func (s *Store) Reset() {
	s.mu.Lock()
	s.clear()
	s.mu.Unlock()

	s.logger.Info("store reset")
}

// ThingDescription returns the registered description for id.
func (s *Store) ThingDescription(id string) (ThingDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.things[id]
	if !ok {
		return ThingDescription{}, fmt.Errorf("%w: %s", ErrThingNotFound, id)
	}
	return d.Clone(), nil
}

// PersonDescription returns the registered description for a person.
func (s *Store) PersonDescription(personID string) (ThingDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.people[personID]
	if !ok {
		return ThingDescription{}, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	return d.Clone(), nil
}

// ThingDescriptions returns a copy of the flat registry. Never nil.
func (s *Store) ThingDescriptions() map[string]ThingDescription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]ThingDescription, len(s.things))
	for id, d := range s.things {
		out[id] = d.Clone()
	}
	return out
}

// RoomDescription returns the description bucket for roomName.
func (s *Store) RoomDescription(roomName string) (RoomDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, ok := s.rooms[roomName]
	if !ok {
		return RoomDescription{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomName)
	}
	return bucket.Clone(), nil
}

// Rooms returns a deep copy of the room catalog in catalog order.
func (s *Store) Rooms() []Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneRooms(s.layout)
}

// Room returns the first catalog room called name.
func (s *Store) Room(name string) (Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.layout {
		if r.Name == name {
			return r.Clone(), nil
		}
	}
	return Room{}, fmt.Errorf("%w: %s", ErrRoomNotFound, name)
}

// ApplianceStatus parses thingID and reads the live state from the room
// catalog, not from the thing registry.
func (s *Store) ApplianceStatus(thingID string) (ApplianceState, error) {
	ref, err := ParseThingID(thingID)
	if err != nil {
		return "", err
	}

	room, err := s.Room(ref.RoomName)
	if err != nil {
		return "", err
	}

	state, ok := room.Appliances.Get(ref.Appliance)
	if !ok {
		return "", fmt.Errorf("%w: %s in room %s", ErrApplianceNotFound, ref.Appliance, ref.RoomName)
	}
	return state, nil
}

// Stats returns entry counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Things:           len(s.things),
		People:           len(s.people),
		RoomDescriptions: len(s.rooms),
		Rooms:            len(s.layout),
	}
}
