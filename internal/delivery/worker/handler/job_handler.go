package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// JobHandlerParams holds dependencies for the JobHandler
type JobHandlerParams struct {
	fx.In

	Maintenance usecase.MaintenanceUsecase
	Logger      *slog.Logger
}

// JobHandler runs maintenance jobs triggered over HTTP by Cloud Scheduler
type JobHandler struct {
	maintenance usecase.MaintenanceUsecase
	logger      *slog.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(params JobHandlerParams) *JobHandler {
	return &JobHandler{maintenance: params.Maintenance, logger: params.Logger}
}

// HandleDailyReset runs one daily reset. A failed run answers 500 so the scheduler's retry
// policy applies; batches committed before the failure are not rolled back.
func (h *JobHandler) HandleDailyReset(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	report, err := h.maintenance.ResetDailyViews(ctx)
	if err != nil {
		logger.Error("[Worker] Daily reset failed", slog.Any("error", err))

		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":  "daily reset failed",
			"report": report,
		})
	}

	return c.JSON(http.StatusOK, report)
}
