package handler

import (
	"strings"
	"testing"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	err := NewValidator().Validate(&profileRequest{
		DisplayName: strings.Repeat("x", 51),
		Website:     "not a url",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"displayName must be 50 characters or less", "website must be a valid URL"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestValidator_AcceptsValidProfile(t *testing.T) {
	err := NewValidator().Validate(&profileRequest{
		DisplayName: "Alice",
		Website:     "https://alice.dev",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
