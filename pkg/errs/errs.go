// Package errs defines the error taxonomy shared by the workflow services:
// validation problems the caller can fix, authorization denials, and
// repository failures. Handlers map these to HTTP statuses in one place.
package errs

import (
	"errors"
	"fmt"
)

// Denial reasons carried by AuthorizationError.
const (
	ReasonNoAssociation = "no-association"
	ReasonRoleMismatch  = "role-mismatch"
)

// ValidationError is a caller-fixable input problem, reported per field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AuthorizationError blocks a screen or action. Landing, when set, is the
// default landing path for the principal's actual role so the caller can
// redirect instead of erroring.
type AuthorizationError struct {
	Reason  string
	Landing string
}

func (e *AuthorizationError) Error() string {
	return "authorization denied: " + e.Reason
}

func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// RepositoryError wraps a backend failure. It is surfaced once at the
// operation boundary as a retryable notification, never silently swallowed.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

func Repository(op string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Err: err}
}

func IsRepository(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re)
}

// Status maps a taxonomy error to the HTTP status handlers respond with.
// Domain-specific rejections (insufficient stock) are mapped by their own
// handlers before falling through here.
func Status(err error) int {
	switch {
	case IsValidation(err):
		return 400
	case IsAuthorization(err):
		return 403
	case IsRepository(err):
		return 502
	default:
		return 500
	}
}
