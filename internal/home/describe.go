package home

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultPeople are the occupants of the simulated home.
var DefaultPeople = []string{"Ava", "Ethan"}

type toggleActions struct {
	Toggle Link `json:"toggle"`
}

// DescribeCatalog builds the thing descriptions for every appliance of
// every room, in catalog and appliance order, followed by one description
// per person.
func DescribeCatalog(rooms []Room, people []string, links LinkBuilder) []ThingDescription {
	descs := make([]ThingDescription, 0, len(people)+len(rooms)*4)

	for _, room := range rooms {
		for _, appliance := range room.Appliances.Names() {
			thingID := FormatThingID(appliance, room.Name)
			descs = append(descs, ThingDescription{
				ThingID:     thingID,
				ThingType:   appliance,
				RoomName:    room.Name,
				Description: fmt.Sprintf("A smart %s capable of being toggled on and off.", strings.ToLower(appliance)),
				Actions: mustMarshal(toggleActions{
					Toggle: Link{Method: http.MethodPost, URL: links.Toggle(thingID)},
				}),
				Status: &Link{Method: http.MethodGet, URL: links.Status(thingID)},
			})
		}
	}

	for _, person := range people {
		descs = append(descs, ThingDescription{
			ThingID:     person,
			ThingType:   ThingTypePerson,
			Description: person + " is a person in the smart home",
			Actions:     mustMarshal(Link{Method: http.MethodGet, URL: links.Actions(person)}),
			Status:      &Link{Method: http.MethodGet, URL: links.Location(person)},
		})
	}

	return descs
}

// NewRoom creates a room of roomType named "<roomType> <n>" with every
// template appliance OFF, in template order.
func NewRoom(roomType string, n int, side string, templateAppliances []string) Room {
	appliances := make([]Appliance, len(templateAppliances))
	for i, name := range templateAppliances {
		appliances[i] = Appliance{Name: name, State: StateOff}
	}
	return Room{
		Name:       fmt.Sprintf("%s %d", roomType, n),
		Side:       side,
		RoomType:   roomType,
		Appliances: NewAppliances(appliances...),
		People:     map[string]Position{},
	}
}
