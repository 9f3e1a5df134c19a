package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// EventMeasurement is the measurement every relayed event is counted in.
const EventMeasurement = "home_events"

// EventPoint describes one relayed event for telemetry.
type EventPoint struct {
	EventType string
	Source    string

	// Room and Appliance are set for appliance toggles.
	Room      string
	Appliance string

	Time time.Time
}

// WriteEvent queues a count=1 point for ev. It never blocks; write errors
// surface through SetOnError.
func (c *Client) WriteEvent(ev EventPoint) {
	if !c.IsConnected() {
		return
	}
	c.writer.WritePoint(newEventPoint(ev))
}

func newEventPoint(ev EventPoint) *write.Point {
	tags := map[string]string{
		"event_type": ev.EventType,
		"source":     ev.Source,
	}
	if ev.Room != "" {
		tags["room"] = ev.Room
	}
	if ev.Appliance != "" {
		tags["appliance"] = ev.Appliance
	}

	at := ev.Time
	if at.IsZero() {
		at = time.Now()
	}

	return write.NewPoint(EventMeasurement, tags, map[string]any{"count": 1}, at)
}
