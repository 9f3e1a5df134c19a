package home

func kitchen() Room {
	r := NewRoom("Kitchen", 1, SideLeft, []string{"Light", "Oven", "Fridge"})
	r.X, r.Y, r.W, r.H = 0, 0, 200, 100
	return r
}

func livingRoom() Room {
	return Room{
		Name:     "Living Room",
		Side:     SideRight,
		RoomType: "Living Room",
		X:        200, Y: 0, W: 300, H: 200,
		Appliances: NewAppliances(
			Appliance{Name: "Light", State: StateOn},
			Appliance{Name: "TV", State: StateOff},
		),
		People: map[string]Position{},
	}
}
