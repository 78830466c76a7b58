package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a recoverable application error. Every kind maps to an
// HTTP status; none is fatal and every failure leaves state unchanged.
type Kind int

const (
	// KindValidation covers malformed or missing input.
	KindValidation Kind = iota
	// KindAuthentication covers a bad PIN or credential pair.
	KindAuthentication
	// KindDomain covers business-rule violations such as insufficient funds.
	KindDomain
	// KindSelection covers mutating actions attempted without a selected row.
	KindSelection
	// KindNotFound covers lookups of rows that do not exist.
	KindNotFound
)

// Error is an application error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation returns a new validation error.
func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// Authentication returns a new authentication error.
func Authentication(msg string) error { return &Error{Kind: KindAuthentication, Message: msg} }

// Domain returns a new business-rule error.
func Domain(msg string) error { return &Error{Kind: KindDomain, Message: msg} }

// Selection returns a new missing-selection error.
func Selection(msg string) error { return &Error{Kind: KindSelection, Message: msg} }

// NotFound returns a new not-found error.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// Status maps an error to an HTTP status code. Errors that are not
// application errors map to 500.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation, KindSelection:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindDomain:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
