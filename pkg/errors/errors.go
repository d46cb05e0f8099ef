package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrBadRequest ErrorCode = iota + 1000
	ErrUnauthorized
	ErrUpstreamTimeout
	ErrUpstreamUnreachable
	ErrInternal
	ErrNotFound
	ErrMethodNotAllowed
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrUpstreamTimeout:
		return http.StatusGatewayTimeout
	case ErrUpstreamUnreachable:
		return http.StatusBadGateway
	case ErrNotFound:
		return http.StatusNotFound
	case ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Name returns a stable identifier for the error class, safe to serialize.
func (e *AppError) Name() string {
	switch e.Code {
	case ErrBadRequest:
		return "BadRequestError"
	case ErrUnauthorized:
		return "UnauthorizedError"
	case ErrUpstreamTimeout:
		return "UpstreamTimeoutError"
	case ErrUpstreamUnreachable:
		return "UpstreamUnreachableError"
	case ErrNotFound:
		return "NotFoundError"
	case ErrMethodNotAllowed:
		return "MethodNotAllowedError"
	default:
		return "InternalError"
	}
}

// Error constructors
func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: message,
	}
}

func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: message,
	}
}

func MethodNotAllowed(message string) *AppError {
	return &AppError{
		Code:    ErrMethodNotAllowed,
		Message: message,
	}
}

func UpstreamTimeout(err error) *AppError {
	return &AppError{
		Code:    ErrUpstreamTimeout,
		Message: "upstream request timed out",
		Err:     err,
	}
}

func UpstreamUnreachable(message string, err error) *AppError {
	return &AppError{
		Code:    ErrUpstreamUnreachable,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}
