package home

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeCatalog(t *testing.T) {
	descs := DescribeCatalog([]Room{livingRoom()}, DefaultPeople, NewLinkBuilder(""))

	require.Len(t, descs, 4)
	ids := make([]string, len(descs))
	for i, d := range descs {
		ids[i] = d.ThingID
	}
	assert.Equal(t, []string{"Light-Living_Room", "TV-Living_Room", "Ava", "Ethan"}, ids)

	light := descs[0]
	assert.Equal(t, "Light", light.ThingType)
	assert.Equal(t, "Living Room", light.RoomName)
	assert.Equal(t, "A smart light capable of being toggled on and off.", light.Description)
	assert.JSONEq(t,
		`{"toggle":{"method":"POST","url":"http://localhost:8080/api/things/toggle/Light-Living_Room"}}`,
		string(light.Actions))
	assert.Equal(t, &Link{Method: "GET", URL: "http://localhost:8080/api/things/status/Light-Living_Room"}, light.Status)

	person := descs[2]
	assert.True(t, person.IsPerson())
	assert.Empty(t, person.RoomName)
	assert.Equal(t, "Ava is a person in the smart home", person.Description)
	assert.JSONEq(t, `{"method":"GET","url":"http://localhost:8080/api/people/getActions/Ava"}`, string(person.Actions))
	assert.Equal(t, "http://localhost:8080/api/people/location/Ava", person.Status.URL)
}

func TestDescribeCatalog_UpsertsCleanly(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.UpsertThingDescriptions(DescribeCatalog([]Room{kitchen(), livingRoom()}, DefaultPeople, NewLinkBuilder(""))))

	assert.Equal(t, Stats{Things: 7, People: 2, RoomDescriptions: 2}, s.Stats())

	b, err := json.Marshal(s.ThingDescriptions()["Ethan"])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "roomName")
}

func TestNewRoom(t *testing.T) {
	r := NewRoom("Bedroom", 3, SideRight, []string{"Light", "Fan"})

	assert.Equal(t, "Bedroom 3", r.Name)
	assert.Equal(t, "Bedroom", r.RoomType)
	assert.Equal(t, []string{"Light", "Fan"}, r.Appliances.Names())
	state, _ := r.Appliances.Get("Fan")
	assert.Equal(t, StateOff, state)
}
