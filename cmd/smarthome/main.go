// Smart home sync core.
//
// This is the main entry point for the real-time state sync service. It
// holds the shared room and thing model, relays events between connected
// WebSocket clients and forwards room catalogs to the light scheduler.
//
// The SQLite journal, MQTT bridge and InfluxDB telemetry are optional and
// enabled in configs/config.yaml.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/smarthome-sync/internal/api"
	"github.com/nerrad567/smarthome-sync/internal/home"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/config"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/database"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/influxdb"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/logging"
	"github.com/nerrad567/smarthome-sync/internal/infrastructure/mqtt"
	"github.com/nerrad567/smarthome-sync/internal/journal"
	"github.com/nerrad567/smarthome-sync/internal/mirror"
	"github.com/nerrad567/smarthome-sync/internal/relay"
	"github.com/nerrad567/smarthome-sync/internal/scheduler"
	"github.com/nerrad567/smarthome-sync/migrations"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// startupCheckTimeout bounds the health checks run once everything is up.
const startupCheckTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// It blocks until ctx is cancelled.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting smart home sync",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	sinks := mirror.Deps{
		Metrics: mirror.NewMetrics(registry),
		Logger:  log,
	}

	// Event journal (optional)
	var db *database.DB
	var events journal.Repository
	if cfg.Database.Enabled {
		db, err = database.Open(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		log.Info("database connected", "path", cfg.Database.Path)

		if migrateErr := db.Migrate(ctx, migrations.FS); migrateErr != nil {
			return fmt.Errorf("running migrations: %w", migrateErr)
		}
		log.Info("database migrations complete")

		repo := journal.NewSQLiteRepository(db.DB)
		events = repo
		sinks.Journal = repo
	} else {
		log.Info("event journal disabled")
	}

	// MQTT bridge (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		sinks.Publisher = mqttClient
	} else {
		log.Info("MQTT disabled")
	}

	// InfluxDB telemetry (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		sinks.Telemetry = influxClient
	} else {
		log.Info("InfluxDB disabled")
	}

	store := home.NewStore()
	store.SetLogger(log)

	hub := api.NewHub(cfg.WebSocket, log, store, mirror.New(sinks))
	go hub.Run(ctx)

	httpRelay := relay.New(store, hub.From(journal.SourceHTTP))
	httpRelay.SetLogger(log)

	if mqttClient != nil {
		mqttRelay := relay.New(store, hub.From(journal.SourceMQTT))
		mqttRelay.SetLogger(log)
		if listenErr := mqttRelay.Listen(mqttClient); listenErr != nil {
			return fmt.Errorf("starting MQTT command listener: %w", listenErr)
		}
	}

	server, err := api.New(api.Deps{
		Config:    cfg.API,
		WS:        cfg.WebSocket,
		Scheduler: cfg.Scheduler,
		Logger:    log,
		Store:     store,
		Hub:       hub,
		Relay:     httpRelay,
		Forwarder: scheduler.NewForwarder(cfg.Scheduler),
		Journal:   events,
		Registry:  registry,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	checkCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	if checkErr := healthCheck(checkCtx, server, db, mqttClient, influxClient); checkErr != nil {
		log.Warn("startup health check failed", "error", checkErr)
	}
	cancel()

	log.Info("smart home sync started",
		"api", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		"websocket", cfg.WebSocket.Path,
		"scheduler", cfg.Scheduler.URL,
	)

	<-ctx.Done()
	log.Info("shutdown signal received")

	// Deferred Close() calls run in reverse order:
	// API server, InfluxDB, MQTT, database.
	log.Info("smart home sync stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses SMARTHOME_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SMARTHOME_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadConfig reads path. A missing file at the default path falls back
// to the built-in configuration; a missing explicit path is an error.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && os.Getenv("SMARTHOME_CONFIG") == "" {
		cfg = config.Default()
		if validateErr := cfg.Validate(); validateErr != nil {
			return nil, validateErr
		}
		return cfg, nil
	}
	return nil, err
}

// healthCheck runs the health check of every running component
// concurrently. Disabled components are nil and skipped.
func healthCheck(ctx context.Context, server *api.Server, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.HealthCheck(gctx); err != nil {
			return fmt.Errorf("api: %w", err)
		}
		return nil
	})
	if db != nil {
		g.Go(func() error {
			if err := db.HealthCheck(gctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			return nil
		})
	}
	if mqttClient != nil {
		g.Go(func() error {
			if err := mqttClient.HealthCheck(gctx); err != nil {
				return fmt.Errorf("mqtt: %w", err)
			}
			return nil
		})
	}
	if influxClient != nil {
		g.Go(func() error {
			if err := influxClient.HealthCheck(gctx); err != nil {
				return fmt.Errorf("influxdb: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
