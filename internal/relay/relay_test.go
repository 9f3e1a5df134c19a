package relay

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/smarthome-sync/internal/home"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/mqtt"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []home.Event
}

func (b *recordingBroadcaster) Broadcast(ev home.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

func (b *recordingBroadcaster) Events() []home.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]home.Event(nil), b.events...)
}

func newTestRelay(t *testing.T) (*Relay, *home.Store, *recordingBroadcaster) {
	t.Helper()
	store := home.NewStore()
	require.NoError(t, store.UpsertThingDescriptions([]home.ThingDescription{{
		ThingID:   "Light-Living_Room",
		ThingType: "Light",
		RoomName:  "Living Room",
	}}))
	out := &recordingBroadcaster{}
	return New(store, out), store, out
}

func TestMovePerson(t *testing.T) {
	r, _, out := newTestRelay(t)

	ev, err := r.MovePerson(context.Background(), "Ava", "Living_Room")
	require.NoError(t, err)

	require.Len(t, out.Events(), 1)
	assert.Equal(t, ev, out.Events()[0])
	assert.Equal(t, home.EventPersonMoved, ev.EventType)
	assert.JSONEq(t, `{"person":"Ava","room":"Living Room"}`, string(ev.Data))
}

func TestMovePerson_NoExistenceChecks(t *testing.T) {
	r, _, out := newTestRelay(t)

	_, err := r.MovePerson(context.Background(), "Nobody", "Nowhere")
	require.NoError(t, err)
	assert.Len(t, out.Events(), 1)
}

func TestMovePerson_MissingFields(t *testing.T) {
	r, _, out := newTestRelay(t)

	_, err := r.MovePerson(context.Background(), "", "Kitchen")
	assert.ErrorIs(t, err, ErrInvalidCommand)
	_, err = r.MovePerson(context.Background(), "Ava", "")
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Empty(t, out.Events())
}

func TestToggleThing(t *testing.T) {
	r, _, out := newTestRelay(t)

	ev, err := r.ToggleThing(context.Background(), "Light-Living_Room")
	require.NoError(t, err)

	require.Len(t, out.Events(), 1)
	b, err := json.Marshal(out.Events()[0])
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"eventType":"toggleAppliance","data":{"eventType":"toggleAppliance","data":{"room":"Living Room","appliance":"Light"}}}`,
		string(b))

	target, err := ev.ToggleTarget()
	require.NoError(t, err)
	assert.Equal(t, home.ToggleTarget{Room: "Living Room", Appliance: "Light"}, target)
}

func TestToggleThing_UnknownEmitsNothing(t *testing.T) {
	r, _, out := newTestRelay(t)

	_, err := r.ToggleThing(context.Background(), "Fan-Attic")

	assert.ErrorIs(t, err, home.ErrThingNotFound)
	assert.Empty(t, out.Events())
}

func TestToggleThing_LeavesStoredStateAlone(t *testing.T) {
	r, store, _ := newTestRelay(t)
	store.SetRoomCatalog([]home.Room{{
		Name:       "Living Room",
		Appliances: home.NewAppliances(home.Appliance{Name: "Light", State: home.StateOff}),
	}})

	_, err := r.ToggleThing(context.Background(), "Light-Living_Room")
	require.NoError(t, err)

	state, err := store.ApplianceStatus("Light-Living_Room")
	require.NoError(t, err)
	assert.Equal(t, home.StateOff, state)
}

func TestCancelledContext(t *testing.T) {
	r, _, out := newTestRelay(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.MovePerson(ctx, "Ava", "Kitchen")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = r.ToggleThing(ctx, "Light-Living_Room")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.Events())
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		payload   string
		wantType  string
		wantErrIs error
	}{
		{"move", mqtt.CommandMove, `{"person":"Ethan","room":"Kitchen_1"}`, home.EventPersonMoved, nil},
		{"toggle", mqtt.CommandToggle, `{"thingID":"Light-Living_Room"}`, home.EventToggleAppliance, nil},
		{"toggle with spaces", mqtt.CommandToggle, `{"thingID":"Light-Living Room"}`, home.EventToggleAppliance, nil},
		{"toggle unknown", mqtt.CommandToggle, `{"thingID":"Oven-Garage"}`, "", home.ErrThingNotFound},
		{"move missing room", mqtt.CommandMove, `{"person":"Ethan"}`, "", ErrInvalidCommand},
		{"bad json", mqtt.CommandMove, `{`, "", ErrInvalidCommand},
		{"unknown kind", "dance", `{}`, "", ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRelay(t)

			ev, err := r.HandleCommand(context.Background(), tt.kind, []byte(tt.payload))
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, ev.EventType)
		})
	}
}

type fakeSubscriber struct {
	topic   string
	qos     byte
	handler mqtt.MessageHandler
}

func (f *fakeSubscriber) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	f.topic, f.qos, f.handler = topic, qos, handler
	return nil
}

func (f *fakeSubscriber) Topics() mqtt.Topics { return mqtt.NewTopics("house") }
func (f *fakeSubscriber) QoS() byte           { return 1 }

func TestListen(t *testing.T) {
	r, _, out := newTestRelay(t)
	sub := &fakeSubscriber{}

	require.NoError(t, r.Listen(sub))
	assert.Equal(t, "house/command/+", sub.topic)
	assert.Equal(t, byte(1), sub.qos)

	require.NoError(t, sub.handler("house/command/move", []byte(`{"person":"Ava","room":"Hallway"}`)))
	require.NoError(t, sub.handler("house/command/toggle", []byte(`{"thingID":"Fan-Attic"}`)), "unknown things are logged, not failed")
	assert.Error(t, sub.handler("house/event/personMoved", []byte(`{}`)))

	require.Len(t, out.Events(), 1)
	assert.Equal(t, home.EventPersonMoved, out.Events()[0].EventType)
}
