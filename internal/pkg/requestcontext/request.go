// Package requestcontext carries correlation identifiers through a context
// so that logs written deep in a use case can be tied back to the HTTP
// request or background job that caused them.
package requestcontext

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	jobKey       contextKey = "job"
)

// Job identifies one delivery of a background job
type Job struct {
	Name    string
	ID      string
	Attempt int
}

// WithRequestID stores the request ID, generating one when empty
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored in ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUserID stores the authenticated user ID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user ID stored in ctx
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithJob stores the job being processed
func WithJob(ctx context.Context, job Job) context.Context {
	return context.WithValue(ctx, jobKey, job)
}

// JobFrom returns the job stored in ctx
func JobFrom(ctx context.Context) (Job, bool) {
	job, ok := ctx.Value(jobKey).(Job)
	return job, ok
}

// Middleware copies the X-Request-ID chosen for the response into the request context.
// It must run after the middleware that assigns request IDs.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			ctx := WithRequestID(c.Request().Context(), requestID)
			if requestID == "" {
				c.Response().Header().Set(echo.HeaderXRequestID, RequestID(ctx))
			}
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
