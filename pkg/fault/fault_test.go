package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(Validation("bad input")); got != KindValidation {
		t.Errorf("expected KindValidation, got %v", got)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("expected plain errors to default to KindInternal, got %v", got)
	}

	wrapped := fmt.Errorf("handler: %w", NotFound("survey not found"))
	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("expected KindOf to see through wrapping, got %v", got)
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(Auth("invalid email or password")); got != "invalid email or password" {
		t.Errorf("unexpected message %q", got)
	}
	if got := MessageOf(errors.New("sql: connection refused")); got != "internal server error" {
		t.Errorf("expected plain errors to be masked, got %q", got)
	}
}

func TestInternal_PreservesCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Internal("user lookup failed", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected the cause to be reachable via errors.Is")
	}
	if MessageOf(err) != "user lookup failed" {
		t.Errorf("unexpected message %q", MessageOf(err))
	}
	if !IsKind(err, KindInternal) {
		t.Errorf("expected KindInternal")
	}
}
