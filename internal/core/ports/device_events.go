package ports

import (
	"context"
	"time"
)

// DeviceStateEvent describes a device state change.
type DeviceStateEvent struct {
	DeviceID  string    `json:"deviceId"`
	RoomID    string    `json:"roomId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// DeviceEventSink accepts events without blocking the caller.
type DeviceEventSink interface {
	Enqueue(event DeviceStateEvent)
}

// DeviceEventPublisher delivers an event to the outside world (MQTT).
type DeviceEventPublisher interface {
	PublishDeviceState(ctx context.Context, event DeviceStateEvent) error
}
