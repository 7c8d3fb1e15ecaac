package handler

import (
	"net/http"

	"crm/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck is the liveness probe. It does not touch the store; see /security-events/health for that.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
