// Package health serves the liveness probe shared by the api and worker binaries.
package health

import (
	"net/http"
	"time"

	"marketbridge/internal/domain/constants"

	"github.com/labstack/echo/v4"
)

// Status is the body of GET /health.
type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Check reports that the process is serving.
func Check(c echo.Context) error {
	return c.JSON(http.StatusOK, Status{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Version:   constants.AppVersion,
	})
}
