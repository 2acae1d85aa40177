package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected operation. Every kind is a local, fully reverting failure.
type ErrorKind string

const (
	KindAuthorization   ErrorKind = "authorization"
	KindStateConflict   ErrorKind = "state_conflict"
	KindDependency      ErrorKind = "dependency"
	KindInsufficient    ErrorKind = "insufficient"
	KindBounds          ErrorKind = "bounds"
	KindLifecycle       ErrorKind = "lifecycle"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindNotFound        ErrorKind = "not_found"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// Errorf builds a DomainError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// PermissionDenied is the per-operation authorization failure.
func PermissionDenied(operation string) *DomainError {
	return Errorf(KindAuthorization, "%s: permission denied", operation)
}

// IsKind reports whether err (or anything it wraps) is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf extracts the kind of a domain error, or "" for infrastructure errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindInvalidArgument
	}
	return ""
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
