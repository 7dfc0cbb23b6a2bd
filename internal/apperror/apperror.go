// Package apperror defines the error classes shared by every layer. Handlers
// translate them into HTTP statuses; nothing below the handlers touches
// net/http.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers every credential failure: missing or malformed
	// bearer, bad signature, expired token, wrong token kind, unknown or
	// soft-deleted user. Callers never learn which one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken is an identity-provider verification failure. The
	// boundary surfaces it as 401 like ErrUnauthorized.
	ErrInvalidToken = errors.New("invalid identity token")

	// ErrNotFound covers both "does not exist" and "exists but belongs to
	// someone else". Merging the two prevents ownership enumeration.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed input rejected before the access layer.
	ErrValidation = errors.New("validation failed")
)

// Error carries a class sentinel plus a message safe to return to the caller.
// Fields is populated for validation errors only.
type Error struct {
	Err     error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an absent or foreign resource by kind, never by reason.
func NotFound(resource string) *Error {
	return &Error{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Unauthorized reports a credential failure with a fixed message so the
// response does not leak which check failed.
func Unauthorized() *Error {
	return &Error{
		Err:     ErrUnauthorized,
		Message: "invalid or expired credentials",
	}
}

// InvalidToken reports a provider identity token that failed verification.
func InvalidToken(provider string) *Error {
	return &Error{
		Err:     ErrInvalidToken,
		Message: fmt.Sprintf("invalid %s token", provider),
	}
}

// Validation reports per-field input errors.
func Validation(fields map[string]string) *Error {
	return &Error{
		Err:     ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}
