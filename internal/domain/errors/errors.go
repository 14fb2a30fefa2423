// Package errors defines the application error taxonomy. Every error that can
// reach a client is one of the values below; raw store or provider errors are
// wrapped as causes and only ever logged server-side.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the contract the HTTP error middleware maps onto the response
// envelope.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() any
}

// BaseError is the standard AppError implementation. The predefined values
// below are immutable; WithDetails/Wrap return copies.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   any
	cause     error
}

// New creates a BaseError with the given HTTP status, machine code and
// client-facing message.
func New(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// HTTPCode returns the HTTP status this error maps to.
func (e *BaseError) HTTPCode() int { return e.httpCode }

// ErrorCode returns the machine-readable error code.
func (e *BaseError) ErrorCode() string { return e.errorCode }

// Message returns the client-facing message.
func (e *BaseError) Message() string { return e.message }

// Details returns optional structured details for the client.
func (e *BaseError) Details() any { return e.details }

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *BaseError) Unwrap() error { return e.cause }

// Is matches by error code and message, so wrapped copies compare equal to
// their predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return e.errorCode == t.errorCode && e.message == t.message
}

// WithDetails returns a copy carrying structured details.
func (e *BaseError) WithDetails(details any) *BaseError {
	clone := *e
	clone.details = details
	return &clone
}

// Wrap returns a copy carrying cause for server-side logging. The
// client-facing fields are unchanged.
func (e *BaseError) Wrap(cause error) *BaseError {
	clone := *e
	clone.cause = cause
	return &clone
}

// WrapMessage returns a copy whose cause is the given text.
func (e *BaseError) WrapMessage(text string) *BaseError {
	clone := *e
	clone.cause = fmt.Errorf("%s", text)
	return &clone
}

// Predefined application errors.
var (
	ErrValidationFailed   = New(http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request input")
	ErrInvalidCredentials = New(http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid email or password")

	ErrTokenMissing        = New(http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
	ErrTokenInvalid        = New(http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid authentication token")
	ErrTokenExpired        = New(http.StatusUnauthorized, "TOKEN_EXPIRED", "Authentication token has expired")
	ErrRefreshTokenInvalid = New(http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or expired refresh session")

	ErrForbidden = New(http.StatusForbidden, "FORBIDDEN", "Access denied")

	ErrUserNotFound      = New(http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrProductNotFound   = New(http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	ErrOrderNotFound     = New(http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	ErrFavouriteNotFound = New(http.StatusNotFound, "FAVOURITE_NOT_FOUND", "Favourite not found")

	ErrUserAlreadyExists      = New(http.StatusConflict, "USER_ALREADY_EXISTS", "User already exists")
	ErrFavouriteAlreadyExists = New(http.StatusConflict, "FAVOURITE_ALREADY_EXISTS", "Product already in favourites")

	ErrPaymentFailed = New(http.StatusBadGateway, "PAYMENT_FAILED", "Payment provider request failed")
	ErrInternalError = New(http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
)

// NewDatabaseExecuteError wraps a raw store error as an internal error so the
// detail never reaches the client.
func NewDatabaseExecuteError(cause error) *BaseError {
	return ErrInternalError.Wrap(cause)
}
