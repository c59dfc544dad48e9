package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,          default=5000"`
	Env      string `env:"ENV,           default=development"`
	LogLevel string `env:"LOG_LEVEL,     default=info"`
	Backend  string `env:"STORE_BACKEND, default=memory"`

	Mongo  MongoConfig
	Redis  RedisConfig
	MQTT   MQTTConfig
	Events EventsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smarthome"`
}

// RedisConfig enables the Redis idempotency store when Addr is set.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// MQTTConfig enables device state publishing when Broker is set.
type MQTTConfig struct {
	Broker      string `env:"MQTT_BROKER"`
	ClientID    string `env:"MQTT_CLIENT_ID,    default=smarthome-api"`
	Username    string `env:"MQTT_USERNAME"`
	Password    string `env:"MQTT_PASSWORD"`
	TopicPrefix string `env:"MQTT_TOPIC_PREFIX, default=smarthome"`
}

type EventsConfig struct {
	Workers int `env:"EVENT_WORKERS, default=4"`
}

// IsTest reports whether the process runs under a test harness, in which
// case the HTTP listener is not started.
func (c *Config) IsTest() bool { return c.Env == EnvTest }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.Backend != BackendMemory && cfg.Backend != BackendMongo {
		return nil, fmt.Errorf("config: STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendMongo, cfg.Backend)
	}
	return &cfg, nil
}
