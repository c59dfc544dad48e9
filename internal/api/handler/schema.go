package handler

// --- Requests ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

type createHouseRequest struct {
	Name  string `json:"name" validate:"required"`
	Owner string `json:"owner" validate:"required"`
}

type addRoomRequest struct {
	Name string `json:"name" validate:"required"`
}

type addDeviceRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// --- Responses ---

type createUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type createHouseResponse struct {
	Message string `json:"message"`
	HouseID string `json:"houseId"`
}

type addRoomResponse struct {
	Message string `json:"message"`
	RoomID  string `json:"roomId"`
}

type addDeviceResponse struct {
	Message  string `json:"message"`
	DeviceID string `json:"deviceId"`
}

type toggleDeviceResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// errorResponse documents the error envelope in the API docs; the central
// error handler renders the same shape.
type errorResponse struct {
	Error string `json:"error"`
}
