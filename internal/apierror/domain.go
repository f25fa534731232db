package apierror

// domain.go — typed domain errors raised by the service layer.
// Handlers map them to HTTP statuses with StatusFor; untyped errors default
// to 400 so internal wording never leaks as a 500.

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error for HTTP status mapping.
type Kind int

const (
	KindValidation Kind = iota + 1 // malformed or missing input
	KindNotFound                   // referenced entity absent
	KindEmptyRange                 // cash cut requested with zero qualifying sales
	KindForbidden                  // actor lacks the required permission flag
	KindPersistence                // underlying store operation failed
)

// DomainError carries a client-safe message plus an optional wrapped cause.
type DomainError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *DomainError) Error() string { return e.Message }
func (e *DomainError) Unwrap() error { return e.Err }

func Validation(msg string) error  { return &DomainError{Kind: KindValidation, Message: msg} }
func NotFound(msg string) error    { return &DomainError{Kind: KindNotFound, Message: msg} }
func EmptyRange(msg string) error  { return &DomainError{Kind: KindEmptyRange, Message: msg} }
func Forbidden(msg string) error   { return &DomainError{Kind: KindForbidden, Message: msg} }

// Persistence wraps a store failure; cause is logged server-side only.
func Persistence(msg string, cause error) error {
	return &DomainError{Kind: KindPersistence, Message: msg, Err: cause}
}

// StatusFor maps a domain error to its HTTP status code.
// Plain errors from the service layer map to 400 (bad request semantics).
func StatusFor(err error) int {
	var de *DomainError
	if !errors.As(err, &de) {
		return http.StatusBadRequest
	}
	switch de.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindPersistence:
		return http.StatusInternalServerError
	case KindEmptyRange, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, k Kind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == k
}
