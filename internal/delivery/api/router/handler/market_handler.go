// Package handler contains the callable API handlers.
package handler

import (
	"net/http"

	"marketbridge/internal/delivery/api/response"
	deliverycontext "marketbridge/internal/delivery/context"
	domainerrors "marketbridge/internal/domain/errors"
	"marketbridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const missingWelcomeFields = "Missing required fields: userName and userRole"

// MarketHandlerParams holds dependencies for MarketHandler, injected by Fx.
type MarketHandlerParams struct {
	fx.In

	Statistics usecase.StatisticsUsecase
	Welcome    usecase.WelcomeUsecase
}

// MarketHandler serves the marketplace callables
type MarketHandler struct {
	statistics usecase.StatisticsUsecase
	welcome    usecase.WelcomeUsecase
}

// NewMarketHandler is the constructor for MarketHandler
func NewMarketHandler(params MarketHandlerParams) *MarketHandler {
	return &MarketHandler{
		statistics: params.Statistics,
		welcome:    params.Welcome,
	}
}

// WelcomeRequest is the callable payload of sendWelcomeNotification
type WelcomeRequest struct {
	UserName string `json:"userName" validate:"required"`
	UserRole string `json:"userRole" validate:"required"`
}

// GetMarketStatistics returns marketplace-wide aggregates. It takes no input.
func (h *MarketHandler) GetMarketStatistics(c echo.Context) error {
	stats, err := h.statistics.ComputeMarketStatistics(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// SendWelcomeNotification greets the authenticated caller
func (h *MarketHandler) SendWelcomeNotification(c echo.Context) error {
	var req WelcomeRequest
	if err := c.Bind(&req); err != nil {
		return response.HandleAppError(c, domainerrors.ErrInvalidArgument.WithDetails("Request body must be a JSON object"))
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, domainerrors.ErrInvalidArgument.WithDetails(missingWelcomeFields))
	}

	ctx := c.Request().Context()
	greeting, err := h.welcome.SendWelcomeNotification(ctx, deliverycontext.GetCaller(ctx), req.UserName, req.UserRole)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, greeting)
}
