package mirror

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts relayed events and sink failures.
type Metrics struct {
	events     *prometheus.CounterVec
	sinkErrors *prometheus.CounterVec
}

// NewMetrics creates the mirror counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smarthome",
				Name:      "events_relayed_total",
				Help:      "Events relayed to websocket clients.",
			},
			[]string{"event_type", "source"},
		),
		sinkErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smarthome",
				Name:      "mirror_sink_errors_total",
				Help:      "Events a mirror sink failed to record.",
			},
			[]string{"sink"},
		),
	}
	reg.MustRegister(m.events)
	reg.MustRegister(m.sinkErrors)
	return m
}

func (m *Metrics) observeEvent(eventType, source string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType, source).Inc()
}

func (m *Metrics) observeSinkError(sink string) {
	if m == nil {
		return
	}
	m.sinkErrors.WithLabelValues(sink).Inc()
}
