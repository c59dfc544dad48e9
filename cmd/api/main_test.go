package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smarthome-io/smarthome-api/pkg/logger"
)

func TestRun_TestModeReturnsWithoutListening(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("MQTT_BROKER", "")
	logger.Reset()
	t.Cleanup(logger.Reset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return in test mode; it is probably serving HTTP")
	}
}
