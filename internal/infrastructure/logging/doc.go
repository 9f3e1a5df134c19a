// Package logging provides structured logging for the smart home sync core.
//
// It wraps log/slog so every component logs through one configured handler
// with the service name and build version attached to each entry.
//
// Configuration comes from the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("starting service", "port", 8080)
//
// Never log the MQTT password or the InfluxDB token.
package logging
