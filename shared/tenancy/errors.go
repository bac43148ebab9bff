package tenancy

import (
	"errors"
	"fmt"
)

// Error kinds. Every registry operation reports misses and bad input through
// these instead of panicking; callers branch with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Error carries the kind plus which record was involved.
type Error struct {
	Kind   error
	Entity string
	ID     string
	Detail string
}

func (e *Error) Error() string {
	msg := e.Entity
	if e.ID != "" {
		msg += " " + e.ID
	}
	msg += ": " + e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind }

func notFound(entity, id string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

func invalidInput(entity, format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Entity: entity, Detail: fmt.Sprintf(format, args...)}
}

func forbidden(entity, id, format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Entity: entity, ID: id, Detail: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFound outcome.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidInput reports whether err is an InvalidInput outcome.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsForbidden reports whether err is a refused role assignment.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }
