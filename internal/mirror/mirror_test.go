package mirror

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/smarthome-sync/internal/home"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/influxdb"
	"github.com/nerrad567/smarthome-sync/internal/journal"
)

type fakeJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
	err     error
}

func (f *fakeJournal) Append(_ context.Context, e *journal.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *e)
	return nil
}

type fakePublisher struct {
	topics   []string
	payloads []string
	err      error
}

func (f *fakePublisher) PublishEvent(eventType string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.topics = append(f.topics, eventType)
	f.payloads = append(f.payloads, string(payload))
	return nil
}

type fakeTelemetry struct {
	points []influxdb.EventPoint
}

func (f *fakeTelemetry) WriteEvent(ev influxdb.EventPoint) {
	f.points = append(f.points, ev)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestMirror(deps Deps) *Mirror {
	m := New(deps)
	m.now = func() time.Time { return fixedNow }
	return m
}

func TestRecord_AllSinks(t *testing.T) {
	j, p, tel := &fakeJournal{}, &fakePublisher{}, &fakeTelemetry{}
	reg := prometheus.NewRegistry()
	m := newTestMirror(Deps{Journal: j, Publisher: p, Telemetry: tel, Metrics: NewMetrics(reg)})

	ev := home.NewToggleApplianceEvent("Kitchen 1", "Light")
	m.Record(ev, journal.SourceHTTP)

	require.Len(t, j.entries, 1)
	assert.Equal(t, home.EventToggleAppliance, j.entries[0].EventType)
	assert.Equal(t, journal.SourceHTTP, j.entries[0].Source)
	assert.Equal(t, string(ev.Data), string(j.entries[0].Data))
	assert.Equal(t, fixedNow, j.entries[0].CreatedAt)

	assert.Equal(t, []string{home.EventToggleAppliance}, p.topics)
	assert.Equal(t, []string{string(ev.Data)}, p.payloads)

	require.Len(t, tel.points, 1)
	assert.Equal(t, influxdb.EventPoint{
		EventType: home.EventToggleAppliance,
		Source:    journal.SourceHTTP,
		Room:      "Kitchen 1",
		Appliance: "Light",
		Time:      fixedNow,
	}, tel.points[0])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.events.WithLabelValues(home.EventToggleAppliance, journal.SourceHTTP)))
}

func TestRecord_PersonMovedTagsRoom(t *testing.T) {
	tel := &fakeTelemetry{}
	m := newTestMirror(Deps{Telemetry: tel})

	m.Record(home.NewPersonMovedEvent("Ava", "Living_Room"), journal.SourceWebSocket)

	require.Len(t, tel.points, 1)
	assert.Equal(t, "Living Room", tel.points[0].Room)
	assert.Empty(t, tel.points[0].Appliance)
}

func TestRecord_SinkFailuresAreCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	tel := &fakeTelemetry{}
	m := newTestMirror(Deps{
		Journal:   &fakeJournal{err: errors.New("disk full")},
		Publisher: &fakePublisher{err: errors.New("not connected")},
		Telemetry: tel,
		Metrics:   NewMetrics(reg),
	})

	m.Record(home.NewResetEvent(), journal.SourceWebSocket)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.sinkErrors.WithLabelValues(SinkJournal)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.metrics.sinkErrors.WithLabelValues(SinkMQTT)))
	assert.Len(t, tel.points, 1, "later sinks still run")
}

func TestRecord_NoSinks(t *testing.T) {
	m := New(Deps{})
	assert.NotPanics(t, func() {
		m.Record(home.NewLogAddedEvent("hi"), journal.SourceWebSocket)
	})

	var nilMirror *Mirror
	assert.NotPanics(t, func() {
		nilMirror.Record(home.NewResetEvent(), journal.SourceWebSocket)
	})
}

func TestRecord_SkipsUntypedEvents(t *testing.T) {
	j := &fakeJournal{}
	m := newTestMirror(Deps{Journal: j})

	m.Record(home.Event{}, journal.SourceWebSocket)

	assert.Empty(t, j.entries)
}
