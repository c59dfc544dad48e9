package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

// DeviceHandler handles HTTP requests for device operations.
type DeviceHandler struct {
	service ports.DeviceService
}

func NewDeviceHandler(service ports.DeviceService) *DeviceHandler {
	return &DeviceHandler{service: service}
}

// Add handles POST /devices/:roomId. The room is not looked up and the
// device starts OFF.
//
// @Summary      Add a device to a room
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        roomId           path      string            true   "Room id"
// @Param        Idempotency-Key  header    string            false  "Key that makes the request safe to retry"
// @Param        body             body      addDeviceRequest  true   "Device details"
// @Success      201              {object}  addDeviceResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /devices/{roomId} [post]
func (h *DeviceHandler) Add(c echo.Context) error {
	var req addDeviceRequest
	if err := bindAndValidate(c, &req, domain.MsgDeviceFieldsRequired); err != nil {
		return err
	}

	res, err := h.service.AddDevice(c.Request().Context(), ports.AddDeviceInput{
		RoomID:         c.Param("roomId"),
		Name:           req.Name,
		Type:           req.Type,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}

	markReplay(c, res)
	return c.JSON(http.StatusCreated, addDeviceResponse{
		Message:  "Device added successfully",
		DeviceID: res.ID,
	})
}

// Get handles GET /devices/:deviceId.
//
// @Summary      Get a device
// @Tags         devices
// @Produce      json
// @Param        deviceId  path      string  true  "Device id"
// @Success      200       {object}  domain.Device
// @Failure      404       {object}  errorResponse
// @Router       /devices/{deviceId} [get]
func (h *DeviceHandler) Get(c echo.Context) error {
	d, err := h.service.GetDevice(c.Request().Context(), c.Param("deviceId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// ListByRoom handles GET /rooms/:roomId/devices. An unknown room yields an
// empty list.
//
// @Summary      List the devices of a room
// @Tags         devices
// @Produce      json
// @Param        roomId  path      string  true  "Room id"
// @Success      200     {array}   domain.Device
// @Router       /rooms/{roomId}/devices [get]
func (h *DeviceHandler) ListByRoom(c echo.Context) error {
	devices, err := h.service.ListDevicesByRoom(c.Request().Context(), c.Param("roomId"))
	if err != nil {
		return err
	}
	if devices == nil {
		devices = []*domain.Device{}
	}
	return c.JSON(http.StatusOK, devices)
}

// Toggle handles PATCH /devices/:deviceId/toggle.
//
// @Summary      Toggle a device between ON and OFF
// @Tags         devices
// @Produce      json
// @Param        deviceId  path      string  true  "Device id"
// @Success      200       {object}  toggleDeviceResponse
// @Failure      404       {object}  errorResponse
// @Router       /devices/{deviceId}/toggle [patch]
func (h *DeviceHandler) Toggle(c echo.Context) error {
	d, err := h.service.ToggleDevice(c.Request().Context(), c.Param("deviceId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toggleDeviceResponse{
		Message: fmt.Sprintf("Device toggled successfully! Current status: %s", d.Status),
		Status:  string(d.Status),
	})
}
