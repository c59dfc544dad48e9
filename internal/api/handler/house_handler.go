package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

// HouseHandler handles HTTP requests for house operations.
type HouseHandler struct {
	service ports.HouseService
}

func NewHouseHandler(service ports.HouseService) *HouseHandler {
	return &HouseHandler{service: service}
}

// Create handles POST /houses.
//
// @Summary      Create a house
// @Tags         houses
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Key that makes the request safe to retry"
// @Param        body             body      createHouseRequest  true   "House details"
// @Success      201              {object}  createHouseResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /houses [post]
func (h *HouseHandler) Create(c echo.Context) error {
	var req createHouseRequest
	if err := bindAndValidate(c, &req, domain.MsgHouseFieldsRequired); err != nil {
		return err
	}

	res, err := h.service.CreateHouse(c.Request().Context(), ports.CreateHouseInput{
		Name:           req.Name,
		Owner:          req.Owner,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}

	markReplay(c, res)
	return c.JSON(http.StatusCreated, createHouseResponse{
		Message: "House created successfully",
		HouseID: res.ID,
	})
}

// Get handles GET /houses/:houseId.
//
// @Summary      Get a house
// @Tags         houses
// @Produce      json
// @Param        houseId  path      string  true  "House id"
// @Success      200      {object}  domain.House
// @Failure      404      {object}  errorResponse
// @Router       /houses/{houseId} [get]
func (h *HouseHandler) Get(c echo.Context) error {
	house, err := h.service.GetHouse(c.Request().Context(), c.Param("houseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, house)
}
