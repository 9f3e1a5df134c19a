// Package mirror taps every event the hub relays and copies it to the
// optional sinks: the SQLite journal, the MQTT event topics, InfluxDB and
// the Prometheus counters.
//
// Sinks are best effort. A failing sink is logged and counted; it never
// affects delivery to websocket clients and never reaches the sender.
package mirror
