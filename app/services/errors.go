package services

import (
	"errors"
	"fmt"

	"inkwell/app/repositories"
)

// Kind classifies a service failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUnauthenticated
	KindUnauthorized
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	case KindUnauthenticated:
		return "not authenticated"
	case KindUnauthorized:
		return "not authorized"
	case KindStorage:
		return "storage error"
	default:
		return "unknown error"
	}
}

// Error is returned by every service operation that fails. Message is safe
// to show to API callers; Err holds the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its kind.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrStorage         = &Error{Kind: KindStorage}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of err, or 0 when err is not a service error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MessageOf returns the caller facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		return e.Kind.String()
	}
	return "Server Error"
}

func validationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundError(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func unauthenticatedError(message string) error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func unauthorizedError(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func storageError(err error) error {
	return &Error{Kind: KindStorage, Message: "Server Error", Err: err}
}

// lookupError translates a repository read failure. ErrNotFound becomes a
// NotFound service error described by what; everything else is storage.
func lookupError(err error, format string, args ...interface{}) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError(format, args...)
	}
	return storageError(err)
}
