package domain

// DeviceStatus is the power state of a device.
type DeviceStatus string

const (
	StatusOn  DeviceStatus = "ON"
	StatusOff DeviceStatus = "OFF"
)

// Toggled returns the opposite state. Anything that is not ON toggles to ON.
func (s DeviceStatus) Toggled() DeviceStatus {
	if s == StatusOn {
		return StatusOff
	}
	return StatusOn
}

// Device is a controllable appliance placed in a room. RoomID is stored
// verbatim and never checked against the room store.
type Device struct {
	ID     string       `json:"id" bson:"_id"`
	Name   string       `json:"name" bson:"name"`
	Type   string       `json:"type" bson:"type"`
	Status DeviceStatus `json:"status" bson:"status"`
	RoomID string       `json:"roomId" bson:"room_id"`
}
