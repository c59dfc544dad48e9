package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port: want %q, got %q", "5000", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env: want %q, got %q", EnvDevelopment, cfg.Env)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Backend: want %q, got %q", BackendMemory, cfg.Backend)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis must be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.MQTT.Broker != "" {
		t.Errorf("MQTT must be disabled by default, got %q", cfg.MQTT.Broker)
	}
	if cfg.MQTT.TopicPrefix != "smarthome" {
		t.Errorf("TopicPrefix: want %q, got %q", "smarthome", cfg.MQTT.TopicPrefix)
	}
	if cfg.Events.Workers != 4 {
		t.Errorf("Workers: want 4, got %d", cfg.Events.Workers)
	}
	if cfg.IsTest() {
		t.Error("default env must not be test mode")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":          "8081",
		"ENV":           "test",
		"STORE_BACKEND": "mongo",
		"MONGO_DB":      "homes",
		"REDIS_ADDR":    "localhost:6379",
		"MQTT_BROKER":   "tcp://broker:1883",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Port: want %q, got %q", "8081", cfg.Port)
	}
	if !cfg.IsTest() {
		t.Error("ENV=test must enable test mode")
	}
	if cfg.Backend != BackendMongo || cfg.Mongo.Database != "homes" {
		t.Errorf("unexpected mongo settings: %+v / %+v", cfg.Backend, cfg.Mongo)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr: got %q", cfg.Redis.Addr)
	}
	if cfg.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("MQTT.Broker: got %q", cfg.MQTT.Broker)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_BACKEND": "postgres",
	}))
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
