package entities

import (
	"errors"
	"fmt"
)

// ErrKind classifies a domain error so the transport layer can map it to a
// status code in one place instead of string-matching messages.
type ErrKind int

const (
	KindUnknown ErrKind = iota
	KindNotFound
	KindBusiness
	KindConflict
	KindUnauthorized
)

// DomainError is the single error type produced by the service layer.
type DomainError struct {
	Kind    ErrKind
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NotFoundf creates a not-found error (missing or soft-deleted row).
func NotFoundf(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Businessf creates a business-rule violation (bad dates, foreign resource,
// default-label mutation, assignee outside the project, and the like).
func Businessf(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindBusiness, Message: fmt.Sprintf(format, args...)}
}

// Conflictf creates a conflict error (duplicate registration).
func Conflictf(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorizedf creates an authentication failure.
func Unauthorizedf(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause while keeping the kind and message.
func (e *DomainError) Wrap(cause error) *DomainError {
	e.Cause = cause
	return e
}

// KindOf extracts the kind from any error in the chain, KindUnknown otherwise.
func KindOf(err error) ErrKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrKind) bool {
	return KindOf(err) == kind
}
