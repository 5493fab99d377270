package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketbridge/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, m *LoggerMiddleware, path string, status int) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)

	err := m.Handle(func(c echo.Context) error {
		return c.NoContent(status)
	})(c)
	require.NoError(t, err)
}

func TestLoggerMiddleware_LevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := NewLoggerMiddleware(logger, &config.Config{})

	serve(t, m, "/v1/getMarketStatistics", http.StatusOK)
	assert.Contains(t, buf.String(), "level=INFO")

	buf.Reset()
	serve(t, m, "/events", http.StatusServiceUnavailable)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "status=503")
}

func TestLoggerMiddleware_QuietPaths(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	serve(t, NewLoggerMiddleware(logger, &config.Config{}, "/health"), "/health", http.StatusOK)
	assert.Empty(t, buf.String())

	debugCfg := &config.Config{}
	debugCfg.Env.Debug = true
	serve(t, NewLoggerMiddleware(logger, debugCfg, "/health"), "/health", http.StatusOK)
	assert.Contains(t, buf.String(), "uri=/health")
}
