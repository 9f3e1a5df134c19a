package mirror

import (
	"context"
	"time"

	"github.com/nerrad567/smarthome-sync/internal/home"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/influxdb"
	"github.com/nerrad567/smarthome-sync/internal/journal"
)

// journalTimeout bounds one journal insert.
const journalTimeout = 2 * time.Second

// Sink names used in logs and the sink error counter.
const (
	SinkJournal   = "journal"
	SinkMQTT      = "mqtt"
	SinkTelemetry = "influxdb"
)

// Journal appends events to the audit trail.
type Journal interface {
	Append(ctx context.Context, entry *journal.Entry) error
}

// Publisher publishes event payloads on the MQTT event topics.
type Publisher interface {
	PublishEvent(eventType string, payload []byte) error
}

// Telemetry queues event points for the time-series database.
type Telemetry interface {
	WriteEvent(ev influxdb.EventPoint)
}

// Logger defines the logging interface used by the mirror.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Deps holds the sinks. Every field is optional.
type Deps struct {
	Journal   Journal
	Publisher Publisher
	Telemetry Telemetry
	Metrics   *Metrics
	Logger    Logger
}

// Mirror copies relayed events to its sinks.
//
// All methods are safe for concurrent use when the sinks are.
type Mirror struct {
	journal   Journal
	publisher Publisher
	telemetry Telemetry
	metrics   *Metrics
	logger    Logger
	now       func() time.Time
}

// New creates a mirror over the given sinks.
func New(deps Deps) *Mirror {
	m := &Mirror{
		journal:   deps.Journal,
		publisher: deps.Publisher,
		telemetry: deps.Telemetry,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       time.Now,
	}
	if m.logger == nil {
		m.logger = noopLogger{}
	}
	return m
}

// Record copies ev, relayed from source, to every configured sink.
// It returns once the journal insert and MQTT publish have finished;
// telemetry is batched by the InfluxDB client.
func (m *Mirror) Record(ev home.Event, source string) {
	if m == nil || ev.EventType == "" {
		return
	}
	at := m.now().UTC()

	m.metrics.observeEvent(ev.EventType, source)

	if m.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		err := m.journal.Append(ctx, &journal.Entry{
			EventType: ev.EventType,
			Source:    source,
			Data:      ev.Data,
			CreatedAt: at,
		})
		cancel()
		if err != nil {
			m.sinkFailed(SinkJournal, ev, err)
		}
	}

	if m.publisher != nil {
		if err := m.publisher.PublishEvent(ev.EventType, ev.Data); err != nil {
			m.sinkFailed(SinkMQTT, ev, err)
		}
	}

	if m.telemetry != nil {
		m.telemetry.WriteEvent(eventPoint(ev, source, at))
	}
}

func (m *Mirror) sinkFailed(sink string, ev home.Event, err error) {
	m.metrics.observeSinkError(sink)
	m.logger.Warn("mirror sink failed", "sink", sink, "event_type", ev.EventType, "error", err)
}

func eventPoint(ev home.Event, source string, at time.Time) influxdb.EventPoint {
	p := influxdb.EventPoint{EventType: ev.EventType, Source: source, Time: at}
	switch ev.EventType {
	case home.EventToggleAppliance:
		if target, err := ev.ToggleTarget(); err == nil {
			p.Room = target.Room
			p.Appliance = target.Appliance
		}
	case home.EventPersonMoved:
		if pm, err := ev.PersonMoved(); err == nil {
			p.Room = pm.Room
		}
	}
	return p
}
