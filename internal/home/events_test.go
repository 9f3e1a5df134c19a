package home

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPersonMovedEvent(t *testing.T) {
	ev := NewPersonMovedEvent("Ava", "Living_Room")

	assert.Equal(t, EventPersonMoved, ev.EventType)
	assert.JSONEq(t, `{"person":"Ava","room":"Living Room"}`, string(ev.Data))

	pm, err := ev.PersonMoved()
	require.NoError(t, err)
	assert.Equal(t, PersonMoved{Person: "Ava", Room: "Living Room"}, pm)
}

func TestNewToggleApplianceEvent_WrapsTarget(t *testing.T) {
	ev := NewToggleApplianceEvent("Kitchen 1", "Light")

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"eventType":"toggleAppliance","data":{"eventType":"toggleAppliance","data":{"room":"Kitchen 1","appliance":"Light"}}}`,
		string(b))

	target, err := ev.ToggleTarget()
	require.NoError(t, err)
	assert.Equal(t, ToggleTarget{Room: "Kitchen 1", Appliance: "Light"}, target)
}

func TestToggleTarget_AcceptsFlatPayload(t *testing.T) {
	ev := Event{EventType: EventToggleAppliance, Data: json.RawMessage(`{"room":"Den","appliance":"Fan"}`)}

	target, err := ev.ToggleTarget()
	require.NoError(t, err)
	assert.Equal(t, ToggleTarget{Room: "Den", Appliance: "Fan"}, target)
}

func TestNewResetEvent(t *testing.T) {
	b, err := json.Marshal(NewResetEvent())
	require.NoError(t, err)
	assert.JSONEq(t, `{"eventType":"reset","data":"reset"}`, string(b))
}

func TestEvent_DataIsRelayedVerbatim(t *testing.T) {
	raw := `{"eventType":"logAdded","data":{"weird":  [1, 2 ,3]}}`

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	assert.Equal(t, `{"weird":  [1, 2 ,3]}`, string(ev.Data))
}

func TestRoomsUpdatedRoundTrip(t *testing.T) {
	ev := NewRoomsUpdatedEvent([]Room{kitchen()})

	rooms, err := ev.Rooms()
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, []string{"Light", "Oven", "Fridge"}, rooms[0].Appliances.Names())
}

func TestEventDecodeErrors(t *testing.T) {
	ev := Event{EventType: EventPersonMoved, Data: json.RawMessage(`"nope"`)}
	_, err := ev.PersonMoved()
	assert.Error(t, err)

	_, err = Event{Data: json.RawMessage(`[1]`)}.ToggleTarget()
	assert.Error(t, err)

	_, err = Event{Data: json.RawMessage(`{}`)}.Rooms()
	assert.Error(t, err)
}
