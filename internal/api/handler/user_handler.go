package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarthome-io/smarthome-api/internal/core/domain"
	"github.com/smarthome-io/smarthome-api/internal/core/ports"
)

// HeaderIdempotentReplay is set to "true" on a create response that returned
// an earlier record instead of storing a new one.
const HeaderIdempotentReplay = "Idempotent-Replayed"

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string             false  "Key that makes the request safe to retry"
// @Param        body             body      createUserRequest  true   "User details"
// @Success      201              {object}  createUserResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req, domain.MsgUserFieldsRequired); err != nil {
		return err
	}

	res, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username:       req.Username,
		Email:          req.Email,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}

	markReplay(c, res)
	return c.JSON(http.StatusCreated, createUserResponse{
		Message: "User created successfully",
		UserID:  res.ID,
	})
}

// Get handles GET /users/:userId.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  domain.User
// @Failure      404     {object}  errorResponse
// @Router       /users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.service.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func markReplay(c echo.Context, res *ports.CreateResult) {
	if res.AlreadyExisted {
		c.Response().Header().Set(HeaderIdempotentReplay, "true")
	}
}
