package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestGracefulServer_StopsOnContextCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	s := NewGracefulServer(e, logger.NewNopLogger(), "127.0.0.1", freePort(t), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestShutdownManager_ReverseOrderAndErrors(t *testing.T) {
	sm := NewShutdownManager(logger.NewNopLogger())

	var order []string
	sm.Register("postgres", func(context.Context) error { order = append(order, "postgres"); return nil })
	sm.Register("nats", func(context.Context) error { order = append(order, "nats"); return errors.New("drain timeout") })
	sm.Register("workers", func(context.Context) error { order = append(order, "workers"); return nil })

	err := sm.Shutdown(context.Background())

	assert.Equal(t, []string{"workers", "nats", "postgres"}, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nats: drain timeout")
}

func TestShutdownManager_Empty(t *testing.T) {
	assert.NoError(t, NewShutdownManager(logger.NewNopLogger()).Shutdown(context.Background()))
}
