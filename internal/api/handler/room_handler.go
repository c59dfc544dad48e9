package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

// RoomHandler handles HTTP requests for room operations.
type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// Add handles POST /rooms/:houseId. The house is not looked up.
//
// @Summary      Add a room to a house
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        houseId          path      string          true   "House id"
// @Param        Idempotency-Key  header    string          false  "Key that makes the request safe to retry"
// @Param        body             body      addRoomRequest  true   "Room details"
// @Success      201              {object}  addRoomResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /rooms/{houseId} [post]
func (h *RoomHandler) Add(c echo.Context) error {
	var req addRoomRequest
	if err := bindAndValidate(c, &req, domain.MsgRoomFieldsRequired); err != nil {
		return err
	}

	res, err := h.service.AddRoom(c.Request().Context(), ports.AddRoomInput{
		HouseID:        c.Param("houseId"),
		Name:           req.Name,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}

	markReplay(c, res)
	return c.JSON(http.StatusCreated, addRoomResponse{
		Message: "Room added successfully",
		RoomID:  res.ID,
	})
}

// Get handles GET /rooms/:roomId.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        roomId  path      string  true  "Room id"
// @Success      200     {object}  domain.Room
// @Failure      404     {object}  errorResponse
// @Router       /rooms/{roomId} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	room, err := h.service.GetRoom(c.Request().Context(), c.Param("roomId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// ListByHouse handles GET /houses/:houseId/rooms. An unknown house yields an
// empty list.
//
// @Summary      List the rooms of a house
// @Tags         rooms
// @Produce      json
// @Param        houseId  path      string  true  "House id"
// @Success      200      {array}   domain.Room
// @Router       /houses/{houseId}/rooms [get]
func (h *RoomHandler) ListByHouse(c echo.Context) error {
	rooms, err := h.service.ListRoomsByHouse(c.Request().Context(), c.Param("houseId"))
	if err != nil {
		return err
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return c.JSON(http.StatusOK, rooms)
}
