package home

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocatePerson(t *testing.T) {
	k := kitchen()
	lr := livingRoom()
	lr.People["Ava"] = Position{X: 1, Y: 2}

	rooms := []Room{k, lr}

	assert.Equal(t, "Living Room", LocatePerson("Ava", rooms))
	assert.Equal(t, Hallway, LocatePerson("Ethan", rooms))
	assert.Equal(t, Hallway, LocatePerson("Ava", nil))
}

func TestLocatePerson_FirstMatchWins(t *testing.T) {
	a, b := kitchen(), livingRoom()
	a.People["Ava"] = Position{}
	b.People["Ava"] = Position{}

	assert.Equal(t, "Kitchen 1", LocatePerson("Ava", []Room{a, b}))
}

func TestDeriveActions_InRoom(t *testing.T) {
	lr := livingRoom()
	lr.People["Ethan"] = Position{}

	got := DeriveActions("Ethan", []Room{kitchen(), lr}, NewLinkBuilder(""))

	want := []Action{
		{Method: "POST", Appliance: "Light", URL: "http://localhost:8080/api/things/toggle/Light-Living_Room"},
		{Method: "POST", Appliance: "TV", URL: "http://localhost:8080/api/things/toggle/TV-Living_Room"},
		{Method: "POST", URL: "http://localhost:8080/api/people/move/Ethan/Hallway"},
	}
	assert.Equal(t, want, got)
}

func TestDeriveActions_InHallway(t *testing.T) {
	got := DeriveActions("Ava", []Room{kitchen(), livingRoom()}, NewLinkBuilder("http://home.local/api/"))

	want := []Action{
		{Method: "POST", URL: "http://home.local/api/people/move/Ava/Kitchen_1"},
		{Method: "POST", URL: "http://home.local/api/people/move/Ava/Living_Room"},
	}
	assert.Equal(t, want, got)
}

func TestDeriveActions_EmptyCatalog(t *testing.T) {
	got := DeriveActions("Ava", nil, LinkBuilder{})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDeriveActions_RoomWithoutAppliances(t *testing.T) {
	r := Room{Name: "Closet", People: map[string]Position{"Ava": {}}}

	got := DeriveActions("Ava", []Room{r}, NewLinkBuilder(""))

	assert.Equal(t, []Action{{Method: "POST", URL: DefaultBaseURL + "/people/move/Ava/Hallway"}}, got)
}

func TestLinkBuilder(t *testing.T) {
	l := NewLinkBuilder("")
	assert.Equal(t, DefaultBaseURL, l.Base())
	assert.Equal(t, DefaultBaseURL+"/things/status/Light-Kitchen", l.Status("Light-Kitchen"))
	assert.Equal(t, DefaultBaseURL+"/people/location/Ava", l.Location("Ava"))
	assert.Equal(t, DefaultBaseURL+"/people/getActions/Ava", l.Actions("Ava"))
	assert.Equal(t, DefaultBaseURL, LinkBuilder{}.Base())
}
