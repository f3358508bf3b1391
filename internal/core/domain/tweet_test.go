package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "trims", in: "  hi  ", want: "hi"},
		{name: "empty", in: "", wantErr: ErrContentRequired},
		{name: "whitespace only", in: " \n\t ", wantErr: ErrContentRequired},
		{name: "exactly 280", in: strings.Repeat("a", 280), want: strings.Repeat("a", 280)},
		{name: "281", in: strings.Repeat("a", 281), wantErr: ErrContentTooLong},
		{name: "multibyte counts runes", in: strings.Repeat("é", 280), want: strings.Repeat("é", 280)},
		{name: "padding not counted", in: "  " + strings.Repeat("b", 280) + "  ", want: strings.Repeat("b", 280)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeContent(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !IsValidation(err) {
					t.Fatalf("expected validation error, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleUser, RoleEditor, RoleAdmin} {
		if !ValidRole(r) {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	for _, r := range []string{"", "root", "Admin"} {
		if ValidRole(r) {
			t.Fatalf("expected %q to be invalid", r)
		}
	}
}
