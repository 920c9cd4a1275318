package newrelic

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// WithExternalSegment times a call to an external service such as the chain RPC node
func WithExternalSegment(ctx context.Context, library, procedure, url string, fn func() error) error {
	txn := FromContext(ctx)
	if txn == nil {
		return fn()
	}

	segment := &newrelic.ExternalSegment{
		StartTime: txn.StartSegmentNow(),
		URL:       url,
		Procedure: procedure,
		Library:   library,
	}
	defer segment.End()

	return fn()
}
