package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ledgersync/internal/pkg/requestcontext"
)

// Response is the envelope for every successful API answer
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorResponse is the envelope for API errors. RequestID lets callers quote
// the failing request when asking operators about a transfer.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      int    `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func requestID(c echo.Context) string {
	if id := requestcontext.RequestID(c.Request().Context()); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     errorMessage,
		Code:      statusCode,
		RequestID: requestID(c),
	})
}

func withDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

// BadRequestResponse sends a 400 response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, withDefault(errorMessage, "Bad request"))
}

// UnauthorizedResponse sends a 401 response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusUnauthorized, withDefault(errorMessage, "Unauthorized"))
}

// ForbiddenResponse sends a 403 response
func ForbiddenResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusForbidden, withDefault(errorMessage, "Forbidden"))
}

// NotFoundResponse sends a 404 response
func NotFoundResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusNotFound, withDefault(errorMessage, "Resource not found"))
}

// ConflictResponse sends a 409 response
func ConflictResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusConflict, withDefault(errorMessage, "Conflict"))
}

// InternalServerErrorResponse sends a 500 response
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusInternalServerError, withDefault(errorMessage, "Internal server error"))
}
