// Package response renders the JSON bodies of the HTTP API. Bodies are flat: success
// payloads are written as-is and errors are {"code","message"}.
package response

import (
	"net/http"

	domainerrors "taskboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageResponse is the body of operations that only report a result message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Code    string `json:"code"`    // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"` // Rendered verbatim to the client
}

// Success writes data as the response body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Message writes {"message": msg}.
func Message(c echo.Context, statusCode int, msg string) error {
	return c.JSON(statusCode, MessageResponse{Message: msg})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		Code:    errorCode,
		Message: message,
	})
}

// BindingError returns a 400 for bodies that cannot be decoded.
func BindingError(c echo.Context) error {
	return Error(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.ErrorCode(), "Malformed request body")
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, domainerrors.ErrInternal.ErrorCode(), domainerrors.ErrInternal.Message())
}

// ErrorCode returns the error code err renders with, for metrics labels.
func ErrorCode(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorCode()
	}

	return domainerrors.ErrInternal.ErrorCode()
}
