// Package influxdb records event telemetry in InfluxDB v2.
//
// Every event the hub relays becomes one point in the home_events
// measurement, tagged with event_type and source (plus room and appliance for
// toggles) and carrying count=1, so dashboards can chart activity per room.
//
// Writes go through the client library's batched non-blocking API; batch
// size and flush interval come from the influxdb section of config.yaml.
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteEvent(influxdb.EventPoint{EventType: "personMoved", Source: "http"})
package influxdb
