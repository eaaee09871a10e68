package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tarjan/internal/logging"
)

func TestNew_JSONCarriesFieldsAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "debug", Format: "json", Output: &buf}).
		With(logging.String("component", "planner"))

	ctx := logging.ContextWithRequestID(context.Background(), "req-1")
	log.Info(ctx, "plan solved", logging.Int("nodes", 5), logging.Float("total", 42.5), logging.Err(errors.New("boom")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "plan solved", rec["msg"])
	require.Equal(t, "planner", rec["component"])
	require.Equal(t, float64(5), rec["nodes"])
	require.Equal(t, 42.5, rec["total"])
	require.Equal(t, "boom", rec["error"])
	require.Equal(t, "req-1", rec["request_id"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "warn", Output: &buf})
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")
	require.False(t, strings.Contains(buf.String(), "hidden"))
	require.True(t, strings.Contains(buf.String(), "shown"))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, logging.ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := logging.EnsureRequestID(context.Background())
	require.Len(t, id, 16)
	again, same := logging.EnsureRequestID(ctx)
	require.Equal(t, id, same)
	require.Equal(t, ctx, again)
	require.Empty(t, logging.RequestIDFromContext(context.Background()))
}

func TestNoop(t *testing.T) {
	log := logging.Noop().With(logging.String("k", "v"))
	log.Error(context.Background(), "dropped")
}
