package middleware

import (
	"log/slog"

	"marketbridge/internal/delivery/api/response"
	deliverycontext "marketbridge/internal/delivery/context"
	domainerrors "marketbridge/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= 500 {
			logger.Error("Request failed",
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
			)
		}
		_ = response.HandleAppError(c, appErr)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := "An error occurred"
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, statusName(httpErr.Code), message, nil)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	// Internal details never reach the client
	_ = response.InternalServerError(c, "Internal server error, please try again later")
}

// statusName maps framework errors (404 route, 405, 413 body limit) onto callable status names
func statusName(code int) string {
	switch {
	case code == 404:
		return domainerrors.ErrNotFound.ErrorCode()
	case code == 401:
		return domainerrors.ErrUnauthenticated.ErrorCode()
	case code == 403:
		return domainerrors.ErrPermissionDenied.ErrorCode()
	case code >= 500:
		return domainerrors.ErrInternal.ErrorCode()
	default:
		return domainerrors.ErrInvalidArgument.ErrorCode()
	}
}
