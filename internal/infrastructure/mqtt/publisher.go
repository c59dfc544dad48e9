package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

// DeviceStateTopic returns the retained state topic for a device.
func DeviceStateTopic(prefix, deviceID string) string {
	return fmt.Sprintf("%s/state/device/%s", prefix, deviceID)
}

// Publisher implements ports.DeviceEventPublisher on top of a paho client.
type Publisher struct {
	client pahomqtt.Client
	prefix string
	qos    byte
}

// NewPublisher publishes under prefix with QoS 1.
func NewPublisher(client pahomqtt.Client, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix, qos: 1}
}

// PublishDeviceState sends the event as retained JSON to the device's state topic.
func (p *Publisher) PublishDeviceState(ctx context.Context, event ports.DeviceStateEvent) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode device event: %w", err)
	}

	token := p.client.Publish(DeviceStateTopic(p.prefix, event.DeviceID), p.qos, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(defaultPublishTimeout):
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishDeviceState(context.Context, ports.DeviceStateEvent) error {
	return nil
}
