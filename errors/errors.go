package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Authentication failures. Rejected, never retried.
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	// Validation failures. Client-fixable, nothing persisted.
	ErrEmptyContent      = fmt.Errorf("message content is required")
	ErrUnknownReceiver   = fmt.Errorf("receiver does not exist")
	ErrInvalidPassword   = fmt.Errorf("password does not meet complexity rules")
	ErrUserAlreadyExists = fmt.Errorf("user already exists")
)

// HTTPStatus translates the error taxonomy to a transport status code.
// Anything outside the known sentinels is a store-level failure and maps
// to 500: the caller must not assume the operation was applied.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrUnknownReceiver),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrUserAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
