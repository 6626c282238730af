package response

import (
	"errors"
	"net/http"
	"time"

	"wealthlab/internal/api/middleware"
	"wealthlab/internal/collector"
	"wealthlab/internal/engine"
	"wealthlab/internal/holdings"
	"wealthlab/internal/pricing"
	"wealthlab/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Error codes
const (
	ErrCodeInternalServer       = "INTERNAL_SERVER_ERROR"
	ErrCodeInvalidParameter     = "INVALID_PARAMETER"
	ErrCodeInsufficientData     = "INSUFFICIENT_DATA"
	ErrCodeNumericIndeterminate = "NUMERIC_INDETERMINATE"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeExternalAPIError     = "EXTERNAL_API_ERROR"
)

// Error sends an error response
func Error(c *gin.Context, statusCode int, code, message string) {
	ErrorWithDetails(c, statusCode, code, message, "")
}

// ErrorWithDetails sends an error response with additional details
func ErrorWithDetails(c *gin.Context, statusCode int, code, message, details string) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
		},
	}

	event := log.Warn()
	if statusCode >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Str("request_id", resp.Error.RequestID).
		Str("error_code", code).
		Str("message", message).
		Str("details", details).
		Int("status", statusCode).
		Msg("API error response")

	c.JSON(statusCode, resp)
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, ErrCodeInvalidParameter, message)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// FromError maps domain errors onto HTTP statuses.
func FromError(c *gin.Context, err error) {
	status, code := classify(err)
	_ = c.Error(err)
	ErrorWithDetails(c, status, code, http.StatusText(status), err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrInsufficientData):
		return http.StatusBadRequest, ErrCodeInsufficientData
	case errors.Is(err, engine.ErrInvalidParameter),
		errors.Is(err, pricing.ErrInvalidParameter),
		errors.Is(err, holdings.ErrInvalidPosition),
		errors.Is(err, repository.ErrPeriodNotSupported):
		return http.StatusUnprocessableEntity, ErrCodeInvalidParameter
	case errors.Is(err, pricing.ErrNumericIndeterminate):
		return http.StatusUnprocessableEntity, ErrCodeNumericIndeterminate
	case errors.Is(err, holdings.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, collector.ErrDataUnavailable),
		errors.Is(err, repository.ErrAssetNotFound),
		errors.Is(err, repository.ErrNoCandles):
		return http.StatusBadGateway, ErrCodeExternalAPIError
	}
	return http.StatusInternalServerError, ErrCodeInternalServer
}
