package main

import (
	"context"
	"fmt"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/smarthome-io/smarthome-api/internal/api"
	"github.com/smarthome-io/smarthome-api/internal/api/handler"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
	"github.com/smarthome-io/smarthome-api/internal/core/service"
	"github.com/smarthome-io/smarthome-api/internal/infrastructure/db/memory"
	mongostore "github.com/smarthome-io/smarthome-api/internal/infrastructure/db/mongo"
	redisstore "github.com/smarthome-io/smarthome-api/internal/infrastructure/db/redis"
	"github.com/smarthome-io/smarthome-api/internal/infrastructure/mqtt"
	"github.com/smarthome-io/smarthome-api/internal/infrastructure/queue"
	"github.com/smarthome-io/smarthome-api/internal/pkg/config"
)

// options overrides process-wide defaults; the zero value is what main uses.
type options struct {
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
}

type repositories struct {
	users   ports.UserRepository
	houses  ports.HouseRepository
	rooms   ports.RoomRepository
	devices ports.DeviceRepository
}

// app is the assembled service: router plus everything that must be torn
// down on exit, in reverse order of creation.
type app struct {
	echo    *echo.Echo
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// build wires stores, the event pipeline, services and the router according
// to cfg. Optional dependencies are skipped when not configured.
func build(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts options) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	var checks []handler.DependencyCheck

	repos, err := openRepositories(ctx, cfg, log, a, &checks)
	if err != nil {
		return nil, err
	}

	idem, err := openIdempotencyStore(ctx, cfg, log, a, &checks)
	if err != nil {
		return nil, err
	}

	publisher, err := openPublisher(cfg, log, a, &checks)
	if err != nil {
		return nil, err
	}

	pipelineCtx, stopPipeline := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, publisher, log.With().Str("component", "device-events").Logger())
	dispatcher.Start(pipelineCtx)
	a.closers = append(a.closers, func() {
		stopPipeline()
		dispatcher.Wait()
	})

	a.echo = api.NewRouter(api.Dependencies{
		Users:      service.NewUserService(repos.users, idem, log),
		Houses:     service.NewHouseService(repos.houses, idem, log),
		Rooms:      service.NewRoomService(repos.rooms, idem, log),
		Devices:    service.NewDeviceService(repos.devices, idem, dispatcher, log),
		Checks:     checks,
		Registerer: opts.registerer,
		Gatherer:   opts.gatherer,
		Logger:     log,
	})
	return a, nil
}

func openRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger, a *app, checks *[]handler.DependencyCheck) (repositories, error) {
	if cfg.Backend != config.BackendMongo {
		log.Info().Msg("using in-memory store")
		return repositories{
			users:   memory.NewUserRepository(),
			houses:  memory.NewHouseRepository(),
			rooms:   memory.NewRoomRepository(),
			devices: memory.NewDeviceRepository(),
		}, nil
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, func() {
		if err := mongostore.Disconnect(client); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	})
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("mongo indexes: %w", err)
	}
	*checks = append(*checks, handler.DependencyCheck{
		Name:  "mongodb",
		Check: func(ctx context.Context) error { return mongostore.Ping(ctx, db) },
	})

	log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb store")
	return repositories{
		users:   mongostore.NewUserRepository(db),
		houses:  mongostore.NewHouseRepository(db),
		rooms:   mongostore.NewRoomRepository(db),
		devices: mongostore.NewDeviceRepository(db),
	}, nil
}

func openIdempotencyStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, a *app, checks *[]handler.DependencyCheck) (ports.IdempotencyStore, error) {
	if cfg.Redis.Addr == "" {
		return memory.NewIdempotencyStore(memory.DefaultIdempotencyTTL), nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	*checks = append(*checks, handler.DependencyCheck{
		Name:  "redis",
		Check: func(ctx context.Context) error { return redisstore.Ping(ctx, client) },
	})

	log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis idempotency store")
	return redisstore.NewIdempotencyStore(client, 0), nil
}

func openPublisher(cfg *config.Config, log zerolog.Logger, a *app, checks *[]handler.DependencyCheck) (ports.DeviceEventPublisher, error) {
	if cfg.MQTT.Broker == "" {
		return mqtt.NopPublisher{}, nil
	}

	client, err := mqtt.Connect(mqtt.Config{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
	}, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { mqtt.Disconnect(client) })
	*checks = append(*checks, handler.DependencyCheck{
		Name:  "mqtt",
		Check: func(context.Context) error { return brokerConnected(client) },
	})

	return mqtt.NewPublisher(client, cfg.MQTT.TopicPrefix), nil
}

func brokerConnected(client pahomqtt.Client) error {
	if !client.IsConnectionOpen() {
		return mqtt.ErrNotConnected
	}
	return nil
}
