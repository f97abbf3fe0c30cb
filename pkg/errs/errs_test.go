package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := Validation("duration_minutes", "must be at least 15")
	if !IsValidation(err) {
		t.Error("expected IsValidation to be true")
	}
	if err.Error() != "duration_minutes: must be at least 15" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	wrapped := fmt.Errorf("schedule appointment: %w", err)
	if !IsValidation(wrapped) {
		t.Error("expected IsValidation to see through wrapping")
	}
}

func TestAuthorizationError(t *testing.T) {
	err := &AuthorizationError{Reason: ReasonRoleMismatch, Landing: "/pharmacist"}
	if !IsAuthorization(err) {
		t.Error("expected IsAuthorization to be true")
	}
	if IsValidation(err) {
		t.Error("authorization error should not be a validation error")
	}
}

func TestRepositoryError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Repository("insert visit", cause)
	if !IsRepository(err) {
		t.Error("expected IsRepository to be true")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}
