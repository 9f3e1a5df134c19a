// Package config handles loading and validating the smart home sync configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Every external integration (journal database, MQTT mirror, InfluxDB
// telemetry) is disabled by default so the core runs with no collaborators.
// Credentials (MQTT password, InfluxDB token) should be set via environment
// variables rather than the config file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.Port)
package config
