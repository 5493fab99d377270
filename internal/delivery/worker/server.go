// Package worker is the change-event push worker delivery.
package worker

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"marketbridge/config"
	"marketbridge/internal/delivery"
	"marketbridge/internal/delivery/health"
	"marketbridge/internal/delivery/middleware"
	"marketbridge/internal/delivery/worker/handler"
	"marketbridge/internal/domain/constants"
	"marketbridge/internal/domain/lifecycle"
	"marketbridge/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type workerServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the worker server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
	JobHandler  *handler.JobHandler
	Metrics     *metrics.Recorder `optional:"true"`
}

// NewServer creates a new worker HTTP server
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &workerServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: newEcho(params, handler.NewPushAuth(params.Logger)),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func newEcho(params ServerParams, pushAuth *handler.PushAuth) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout
	e.Server.IdleTimeout = params.Cfg.HTTP.Timeouts.IdleTimeout

	metricsPath := ""
	if params.Metrics != nil && params.Cfg.Metrics != nil && params.Cfg.Metrics.Enabled {
		metricsPath = params.Cfg.Metrics.Path
	}

	e.Use(echomiddleware.Recover())
	e.Use(middleware.NewRequestIDMiddleware(params.Logger).Process)
	e.Use(middleware.NewLoggerMiddleware(params.Logger, params.Cfg, "/health", metricsPath).Handle)
	e.Use(echomiddleware.BodyLimit(params.Cfg.HTTP.MaxRequestBodySize))

	e.GET("/health", health.Check)
	if metricsPath != "" {
		e.GET(metricsPath, echo.WrapHandler(params.Metrics.Handler()))
	}

	// Pub/Sub and Cloud Scheduler both sign their pushes
	var pushMiddlewares []echo.MiddlewareFunc
	if verifyPushAuth(params.Cfg) {
		pushMiddlewares = append(pushMiddlewares, pushAuth.Verify)
	}
	e.POST("/events", params.PushHandler.HandlePush, pushMiddlewares...)
	e.POST("/jobs/daily-reset", params.JobHandler.HandleDailyReset, pushMiddlewares...)

	return e
}

func verifyPushAuth(cfg *config.Config) bool {
	return cfg.Worker.VerifyPushAuth && cfg.Env.Env != constants.EnvDevelop
}

// Serve starts the worker HTTP server
func (s *workerServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting Worker HTTP server", slog.String("host_port", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *workerServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down Worker HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
