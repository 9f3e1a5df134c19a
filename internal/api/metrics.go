package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Command outcomes recorded by commandsTotal.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// metrics holds the API's Prometheus collectors.
type metrics struct {
	requests *prometheus.CounterVec
	commands *prometheus.CounterVec
	clients  prometheus.GaugeFunc
}

// newMetrics creates the API collectors and registers them on reg.
// The client gauge reads hub at scrape time.
func newMetrics(reg prometheus.Registerer, hub *Hub) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smarthome",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smarthome",
				Name:      "commands_total",
				Help:      "Move and toggle commands received over HTTP.",
			},
			[]string{"command", "outcome"},
		),
		clients: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "smarthome",
				Name:      "websocket_clients",
				Help:      "Currently connected WebSocket clients.",
			},
			func() float64 { return float64(hub.ClientCount()) },
		),
	}
	reg.MustRegister(m.requests)
	reg.MustRegister(m.commands)
	reg.MustRegister(m.clients)
	return m
}

func (m *metrics) observeRequest(method, route string, status int) {
	m.requests.WithLabelValues(method, route, statusLabel(status)).Inc()
}

func (m *metrics) observeCommand(command, outcome string) {
	m.commands.WithLabelValues(command, outcome).Inc()
}
