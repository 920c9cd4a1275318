package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// FromEchoContext extracts the New Relic transaction from an Echo context
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext extracts the New Relic transaction from a standard context
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// StartSegment returns nil when there is no transaction
func StartSegment(txn *newrelic.Transaction, name string) *newrelic.Segment {
	if txn == nil {
		return nil
	}
	return txn.StartSegment(name)
}

func SetTransactionName(txn *newrelic.Transaction, name string) {
	if txn != nil {
		txn.SetName(name)
	}
}

func AddTransactionAttribute(txn *newrelic.Transaction, key string, value interface{}) {
	if txn != nil {
		txn.AddAttribute(key, value)
	}
}

func NoticeTransactionError(txn *newrelic.Transaction, err error) {
	if txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// StartBackgroundTransaction starts a non-web transaction and returns a context carrying it.
// The returned end func is safe to call when the app is nil.
func StartBackgroundTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, *newrelic.Transaction, func()) {
	if app == nil {
		return ctx, nil, func() {}
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn, txn.End
}

// WithSegment executes fn within a New Relic segment
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	if segment := StartSegment(FromContext(ctx), segmentName); segment != nil {
		defer segment.End()
	}
	return fn()
}

// TraceHandler names the transaction after the handler and records returned errors
func TraceHandler(handlerName string, handler echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		txn := FromEchoContext(c)
		SetTransactionName(txn, handlerName)

		err := handler(c)
		NoticeTransactionError(txn, err)
		return err
	}
}
