package domain

import "testing"

func TestNewEmail_NormalizesCase(t *testing.T) {
	email, err := NewEmail("  Alice@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email.String() != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", email.String())
	}
}

func TestNewEmail_Invalid(t *testing.T) {
	for _, value := range []string{"", "   ", "not-an-email", "missing@domain@twice"} {
		if _, err := NewEmail(value); err == nil {
			t.Errorf("expected error for %q", value)
		}
	}
}

func TestNewName(t *testing.T) {
	name, err := NewName("  Alice  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Alice" {
		t.Errorf("expected trimmed name, got %q", name)
	}

	if _, err := NewName("A"); err == nil {
		t.Errorf("expected error for a one-character name")
	}
	if _, err := NewName(" a "); err == nil {
		t.Errorf("expected trimming to happen before the length check")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret"); err != nil {
		t.Errorf("unexpected error for a six-character password: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Errorf("expected error for a five-character password")
	}
}
