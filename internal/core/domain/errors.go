package domain

import "errors"

// ErrNotFound is the root of every lookup miss; use errors.Is to test for it.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound   = notFound("user")
	ErrHouseNotFound  = notFound("house")
	ErrRoomNotFound   = notFound("room")
	ErrDeviceNotFound = notFound("device")
)

// ErrDuplicateID is returned by a store when the generated id is already taken.
var ErrDuplicateID = errors.New("duplicate record id")

// Messages carried by the ValidationError of each create operation.
const (
	MsgUserFieldsRequired   = "Username and email are required"
	MsgHouseFieldsRequired  = "House name and owner are required"
	MsgRoomFieldsRequired   = "Room name is required"
	MsgDeviceFieldsRequired = "Device name and type are required"
)

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a *ValidationError carrying msg.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

type notFoundError struct {
	resource string
}

func notFound(resource string) error {
	return &notFoundError{resource: resource}
}

func (e *notFoundError) Error() string {
	return e.resource + " not found"
}

func (e *notFoundError) Unwrap() error {
	return ErrNotFound
}
