package logs

import (
	"bytes"
	"encoding/json"
	"testing"

	"marketbridge/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "", "warn", "error"} {
		_, err := parseLogLevel(level)
		assert.NoError(t, err, level)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func TestBuild_JSONWithServiceName(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "marketbridge-worker"
	cfg.Env.Log.Level = "info"

	var buf bytes.Buffer
	logger, err := build(&buf, cfg)
	require.NoError(t, err)

	logger.Info("event handled")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "event handled", line["msg"])
	assert.Equal(t, "marketbridge-worker", line["service"])
}
