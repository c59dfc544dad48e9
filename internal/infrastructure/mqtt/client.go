// Package mqtt publishes device state changes to an MQTT broker using
// eclipse/paho.mqtt.golang.
//
// State messages are retained so that a subscriber connecting later receives
// the last known state of every device immediately:
//
//	<prefix>/state/device/<deviceId>  {"deviceId":"…","status":"ON",…}
package mqtt

import (
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 5 * time.Second
	disconnectQuiesceMs   = 250
)

var (
	// ErrNotConnected is returned when publishing while the broker link is down.
	ErrNotConnected = errors.New("mqtt: not connected")

	// ErrPublishFailed wraps broker-side publish failures and timeouts.
	ErrPublishFailed = errors.New("mqtt: publish failed")
)

// Config holds broker connection settings.
type Config struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string
	Username string
	Password string
	Timeout  time.Duration
}

// Connect dials the broker with auto-reconnect enabled and waits for the
// initial connection.
func Connect(cfg Config, log zerolog.Logger) (pahomqtt.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(timeout).
		SetOnConnectHandler(func(pahomqtt.Client) {
			log.Info().Str("broker", cfg.Broker).Msg("mqtt connected")
		}).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			log.Warn().Err(err).Str("broker", cfg.Broker).Msg("mqtt connection lost")
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect: timeout after %v", timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return client, nil
}

// Disconnect closes the broker link, letting in-flight work finish briefly.
func Disconnect(client pahomqtt.Client) {
	client.Disconnect(disconnectQuiesceMs)
}
