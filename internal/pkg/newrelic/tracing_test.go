package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestHelpersTolerateMissingTransaction(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, FromContext(ctx))
	assert.Nil(t, StartSegment(nil, "noop"))
	assert.NotPanics(t, func() {
		SetTransactionName(nil, "name")
		AddTransactionAttribute(nil, "k", "v")
		NoticeTransactionError(nil, errors.New("boom"))
	})

	called := false
	assert.NoError(t, WithSegment(ctx, "segment", func() error { called = true; return nil }))
	assert.True(t, called)

	assert.NoError(t, WithExternalSegment(ctx, "ethclient", "eth_getLogs", "http://rpc", func() error { return nil }))
}

func TestStartBackgroundTransaction_NilApp(t *testing.T) {
	ctx, txn, end := StartBackgroundTransaction(context.Background(), nil, "job/pay_to")
	assert.Nil(t, txn)
	assert.NotNil(t, ctx)
	assert.NotPanics(t, end)
}

func TestTraceHandler_PassesThroughErrors(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	boom := errors.New("boom")
	err := TraceHandler("Handler", func(echo.Context) error { return boom })(c)
	assert.ErrorIs(t, err, boom)
}

func TestInitNewRelic_Disabled(t *testing.T) {
	assert.Nil(t, InitNewRelic(&models.Config{}))
}
