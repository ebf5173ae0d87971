package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes with a plain "ok". It deliberately
// touches neither the database nor redis so a degraded dependency
// does not take the whole instance out of rotation.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
