package domain

import (
	"errors"
	"fmt"
)

// Kind classifies failures crossing the persistence and service boundaries.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingFields
	KindInvalidInput
	KindDuplicateEmail
	KindDatabaseUnavailable
	KindUnauthorized
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindMissingFields:
		return "missing_fields"
	case KindInvalidInput:
		return "invalid_input"
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindDatabaseUnavailable:
		return "database_unavailable"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// MessageOf returns the human-readable message of the first *Error in err's chain.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
