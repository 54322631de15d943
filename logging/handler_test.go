package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i-rong/l2-reflector/logging"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		base    logging.Level
		monitor logging.Level
		wantErr bool
	}{
		{name: "empty defaults to info", in: "", base: logging.LevelInfo, monitor: logging.LevelInfo},
		{name: "bare level", in: "warn", base: logging.LevelWarn, monitor: logging.LevelWarn},
		{name: "component override", in: "info,monitor=trace", base: logging.LevelInfo, monitor: logging.LevelTrace},
		{name: "override only", in: "monitor=debug", base: logging.LevelInfo, monitor: logging.LevelDebug},
		{name: "bad level", in: "loud", wantErr: true},
		{name: "bad component level", in: "monitor=loud", wantErr: true},
		{name: "empty component", in: "=debug", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := logging.ParseSpec(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.base, spec.LevelFor("manager"))
			assert.Equal(t, tt.monitor, spec.LevelFor("monitor"))
		})
	}
}

func TestFilteringHandler_Enabled(t *testing.T) {
	spec := &logging.Spec{
		BaseLevel: logging.LevelWarn,
		Components: map[string]logging.Level{
			"manager": logging.LevelDebug,
			"store":   logging.LevelTrace,
		},
	}

	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logging.LevelTrace.ToSlog()})
	handler := logging.NewFilteringHandler(inner, spec)

	// No component: base level applies.
	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))

	managerHandler := handler.WithAttrs([]slog.Attr{slog.String("component", "manager")})
	assert.True(t, managerHandler.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, managerHandler.Enabled(context.Background(), logging.LevelTrace.ToSlog()))

	storeHandler := handler.WithAttrs([]slog.Attr{slog.String("component", "store")})
	assert.True(t, storeHandler.Enabled(context.Background(), logging.LevelTrace.ToSlog()))
}

func TestFilteringHandler_Handle(t *testing.T) {
	spec := &logging.Spec{
		BaseLevel: logging.LevelWarn,
		Components: map[string]logging.Level{
			"monitor": logging.LevelDebug,
		},
	}

	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logging.LevelTrace.ToSlog()})
	handler := logging.NewFilteringHandler(inner, spec)
	ctx := context.Background()

	r := slog.NewRecord(testTime(), slog.LevelDebug, "suppressed", 0)
	require.NoError(t, handler.Handle(ctx, r))
	assert.Empty(t, buf.String())

	r = slog.NewRecord(testTime(), slog.LevelError, "base error", 0)
	require.NoError(t, handler.Handle(ctx, r))
	assert.Contains(t, buf.String(), "base error")

	monitorHandler := handler.WithAttrs([]slog.Attr{slog.String("component", "monitor")})
	buf.Reset()
	r = slog.NewRecord(testTime(), slog.LevelDebug, "monitor debug", 0)
	require.NoError(t, monitorHandler.Handle(ctx, r))
	assert.Contains(t, buf.String(), "monitor debug")
}

func TestNew_FormatAndSpec(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{
		CLISpec: "debug",
		Format:  logging.FormatJSON,
		Output:  &buf,
	})
	require.NoError(t, err)

	logger.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = logging.New(logging.Options{CLISpec: "bogus"})
	require.Error(t, err)
}
