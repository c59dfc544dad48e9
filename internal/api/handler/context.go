package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderIdempotencyKey names the optional header that makes a create
// request safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

// idempotencyKey returns the trimmed Idempotency-Key header, or "" when the
// client did not send one.
func idempotencyKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
}
