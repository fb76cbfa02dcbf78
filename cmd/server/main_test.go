package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/autotrack/vehicle-records/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         8369,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
	}
	handler := http.NotFoundHandler()

	srv := newServer(cfg, handler)

	assert.Equal(t, "127.0.0.1:8369", srv.Addr)
	assert.Equal(t, 30*time.Second, srv.ReadTimeout)
	assert.Equal(t, 90*time.Second, srv.WriteTimeout)
	assert.NotZero(t, srv.ReadHeaderTimeout)
}

func TestRun(t *testing.T) {
	t.Run("fails without a firebase project", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "")

		err := run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
	})

	t.Run("fails on an invalid log level", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "demo-project")
		t.Setenv("LOG_LEVEL", "loud")

		err := run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
