package observability

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/autotrack/vehicle-records/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ObservabilityConfig
		wantErr string
	}{
		{"json", config.ObservabilityConfig{LogLevel: "info", LogFormat: "json"}, ""},
		{"console", config.ObservabilityConfig{LogLevel: "debug", LogFormat: "console"}, ""},
		{"format defaults to json", config.ObservabilityConfig{LogLevel: "warn"}, ""},
		{"invalid level", config.ObservabilityConfig{LogLevel: "loud", LogFormat: "json"}, "invalid log level"},
		{"invalid format", config.ObservabilityConfig{LogLevel: "info", LogFormat: "xml"}, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestNewLogger_LevelIsApplied(t *testing.T) {
	logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "warn", LogFormat: "json"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	logger, err := NewLogger(config.ObservabilityConfig{LogLevel: "info", LogFormat: "json", LogFile: path})
	require.NoError(t, err)

	logger.Info("car registered", zap.Int64("car_id", 7))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"car registered"`)
	assert.Contains(t, string(data), `"car_id":7`)
}

func TestWithRequestAndResponse(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	req := httptest.NewRequest(http.MethodGet, "/cars/7", nil)
	req.Header.Set("Referer", "https://autotrack.work")

	WithResponse(WithRequest(logger, req), http.StatusOK, 15*time.Millisecond).Info("request completed")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/cars/7", fields["path"])
	assert.Equal(t, "https://autotrack.work", fields["referer"])
	assert.Equal(t, int64(200), fields["status"])
	assert.Equal(t, 15*time.Millisecond, fields["duration"])
}
