package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/host"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidPassword   = "INVALID_PASSWORD"
	CodeHostAuthDisabled  = "HOST_AUTH_DISABLED"
	CodeQuizBankNotLoaded = "QUIZ_BANK_NOT_LOADED"
	CodeQuizPoolTooSmall  = "QUIZ_POOL_TOO_SMALL"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
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
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrHostUnauthorized):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Host authorization required"}}
	case errors.Is(err, host.ErrInvalidPassword):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidPassword, "Invalid host password"}}
	case errors.Is(err, model.ErrQuizBankNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeQuizBankNotLoaded, "Quiz bank is not loaded"}}
	case errors.Is(err, model.ErrQuizPoolTooSmall):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeQuizPoolTooSmall, "Not enough quizzes to fill the board"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewHostAuthDisabledError is returned by host login when no password is configured
func NewHostAuthDisabledError() error {
	return &httpError{http.StatusNotFound, APIError{CodeHostAuthDisabled, "Host authentication is not enabled"}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
