// Package router contains routing for the callable API.
package router

import (
	"marketbridge/internal/delivery/api/middleware"
	"marketbridge/internal/delivery/api/router/handler"
	"marketbridge/internal/delivery/health"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	MarketHandler  *handler.MarketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	marketHandler  *handler.MarketHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		marketHandler:  params.MarketHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", health.Check)

	// Callables keep their function names as paths
	v1 := e.Group("/v1")
	{
		v1.POST("/getMarketStatistics", r.marketHandler.GetMarketStatistics)
		v1.POST("/sendWelcomeNotification", r.marketHandler.SendWelcomeNotification, r.authMiddleware.Authenticate)
	}
}
