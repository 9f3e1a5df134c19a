// Package mqtt connects the smart home sync core to an MQTT broker.
//
// The broker is optional. When enabled it carries:
//   - <prefix>/event/<eventType>: a mirror of every event the hub relays
//   - <prefix>/command/move and <prefix>/command/toggle: inbound commands
//     handled by the command relay
//   - <prefix>/system/status: retained online/offline status, with an LWT
//     so subscribers notice a crash
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(client.Topics().AllCommands(), client.QoS(), handle)
package mqtt
