package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ledgersync/internal/pkg/requestcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ledger.log")

	l, err := NewZapLogger(ZapConfig{Level: "debug", FilePath: path, Service: "ledger"}, nil)
	require.NoError(t, err)

	l.Info("watermark advanced", Int64("block", 42))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "watermark advanced")
	assert.Contains(t, string(data), `"block":42`)
}

func TestNewZapLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := NewZapLogger(ZapConfig{Level: "loud"}, nil)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
	assert.True(t, l.Core().Enabled(0))
}

func TestGlobalLogger_ContextHelpers(t *testing.T) {
	SetGlobalLogger(NewNopLogger())
	t.Cleanup(func() { SetGlobalLogger(nil) })

	assert.NotPanics(t, func() {
		InfoCtx(context.Background(), "info")
		WarnCtx(context.Background(), "warn")
		ErrorCtx(context.Background(), "error")
		DebugCtx(context.Background(), "debug")
	})
}

func TestGlobalLogger_AddsCorrelationFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetGlobalLogger(&ZapLogger{Logger: zap.New(core)})
	t.Cleanup(func() { SetGlobalLogger(nil) })

	ctx := requestcontext.WithRequestID(context.Background(), "req-7")
	ctx = requestcontext.WithUserID(ctx, "user-1")
	ctx = requestcontext.WithJob(ctx, requestcontext.Job{Name: "pay_to", ID: "job-1", Attempt: 2})
	InfoCtx(ctx, "settled")
	Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "pay_to", fields["job"])
	assert.Equal(t, "job-1", fields["job_id"])
	assert.EqualValues(t, 2, fields["attempt"])
	assert.Empty(t, entries[1].ContextMap())
}

func TestZapEchoMiddleware_HandlesErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/transactions/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ZapEchoMiddleware(NewNopLogger())(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
