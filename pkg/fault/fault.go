package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a Fault so the HTTP layer can pick a status code
// without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
)

// Fault carries a user-facing message plus an optional wrapped cause.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.kindString(), f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.kindString(), f.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) kindString() string {
	switch f.Kind {
	case KindValidation:
		return "ValidationError"
	case KindConflict:
		return "ConflictError"
	case KindAuth:
		return "AuthError"
	case KindNotFound:
		return "NotFoundError"
	case KindInternal:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Validation reports a malformed request shape.
func Validation(msg string) error {
	return &Fault{Kind: KindValidation, Message: msg}
}

// Conflict reports a uniqueness violation such as a duplicate email.
func Conflict(msg string) error {
	return &Fault{Kind: KindConflict, Message: msg}
}

// Auth reports bad credentials or an invalid token.
func Auth(msg string) error {
	return &Fault{Kind: KindAuth, Message: msg}
}

// NotFound reports a missing resource.
func NotFound(msg string) error {
	return &Fault{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected infrastructure failure.
func Internal(msg string, err error) error {
	return &Fault{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err, or a generic one.
func MessageOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Message
	}
	return "internal server error"
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}
