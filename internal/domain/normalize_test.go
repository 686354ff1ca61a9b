package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  fajr  ", want: "fajr"},
		{name: "lowercase", input: "All 5 Prayers", want: "all 5 prayers"},
		{name: "compress multiple spaces", input: "all   5 prayers", want: "all 5 prayers"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "tabs and spaces", input: "\t isha \t", want: "isha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	if got := NormalizeIdentifier("  Aisha@Gmail.COM "); got != "aisha@gmail.com" {
		t.Errorf("NormalizeIdentifier = %q, want aisha@gmail.com", got)
	}
}

func TestValidateIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       string
		domain   string
		wantErr  bool
		wantText string
	}{
		{name: "plain email", id: "a@gmail.com"},
		{name: "other domain allowed by default", id: "user@example.org"},
		{name: "subdomain", id: "x.y@mail.example.co.uk"},
		{name: "required domain matches", id: "a@gmail.com", domain: "gmail.com"},
		{name: "required domain case-insensitive", id: "a@gmail.com", domain: "Gmail.com"},
		{name: "empty", id: "", wantErr: true, wantText: "required"},
		{name: "no at sign", id: "agmail.com", wantErr: true, wantText: "email"},
		{name: "leading at", id: "@gmail.com", wantErr: true, wantText: "email"},
		{name: "two at signs", id: "a@b@gmail.com", wantErr: true, wantText: "email"},
		{name: "no dot in domain", id: "a@localhost", wantErr: true, wantText: "email"},
		{name: "trailing dot", id: "a@gmail.", wantErr: true, wantText: "email"},
		{name: "whitespace", id: "a b@gmail.com", wantErr: true, wantText: "whitespace"},
		{name: "too long", id: strings.Repeat("a", 250) + "@x.io", wantErr: true, wantText: "too long"},
		{name: "wrong domain", id: "a@yahoo.com", domain: "gmail.com", wantErr: true, wantText: "@gmail.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateIdentifier(tt.id, tt.domain)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantText)
			}
		})
	}
}
