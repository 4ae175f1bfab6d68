package apierr

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Set for LOCKED responses
	RemainingSeconds int        `json:"remaining_seconds,omitempty"`
	LockedUntil      *time.Time `json:"locked_until,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidPlayer   = "INVALID_PLAYER"
	CodeInvalidConfig   = "INVALID_CONFIG"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeAdminDisabled   = "ADMIN_DISABLED"
	CodeLocked          = "LOCKED"
	CodeDrawInProgress  = "DRAW_IN_PROGRESS"
	CodeDataUnavailable = "DATA_UNAVAILABLE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	if he.apiError.RemainingSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(he.apiError.RemainingSeconds))
	}
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var locked *model.LockedError
	if errors.As(err, &locked) {
		until := locked.Status.Until
		return &httpError{http.StatusLocked, APIError{
			Code:             CodeLocked,
			Message:          "Already drawn, try again later",
			RemainingSeconds: int(math.Ceil(locked.Status.Remaining.Seconds())),
			LockedUntil:      &until,
		}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidPlayer, Message: "First and last name are required"}}
	case errors.Is(err, model.ErrInvalidConfig):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidConfig, Message: err.Error()}}
	case errors.Is(err, model.ErrLocked):
		return &httpError{http.StatusLocked, APIError{Code: CodeLocked, Message: "Already drawn, try again later"}}
	case errors.Is(err, model.ErrDrawInProgress):
		return &httpError{http.StatusConflict, APIError{Code: CodeDrawInProgress, Message: "A draw is already in progress"}}
	case errors.Is(err, model.ErrCatalogUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeDataUnavailable, Message: "Quote data is not available"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Invalid admin token"}}
	case errors.Is(err, auth.ErrAdminDisabled):
		return &httpError{http.StatusForbidden, APIError{Code: CodeAdminDisabled, Message: "Admin access is not configured"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewRateLimitedError creates a too-many-requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{Code: CodeRateLimited, Message: "Rate limit exceeded"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
