package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("age", "must be at least 1")

	if got := err.Error(); got != "validation: age: must be at least 1" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "identifier", Message: "required"},
		{Field: "gender", Message: "must be male or female"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestValidationError_WrappedStillMatches(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("identity.Register: %w", NewValidationError("identifier", "invalid format"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should find *ValidationError through wrapping")
	}
	if ve.Errors[0].Field != "identifier" {
		t.Errorf("field = %q, want identifier", ve.Errors[0].Field)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrValidation, ErrDuplicateIdentity,
		ErrRemoteUnavailable, ErrCorruptLocalState, ErrNoSession,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
