package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/gate-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		expectErr bool
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "case insensitive", logLevel: "INFO"},
		{name: "invalid level", logLevel: "verbose", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	attached := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithLogger(context.Background(), attached)
	got := FromContext(ctx)

	require.Same(t, attached, got)

	got.Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	got := FromContext(context.Background())
	assert.NotNil(t, got)
}
