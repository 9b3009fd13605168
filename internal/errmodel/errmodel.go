package errmodel

import (
	"errors"
	"net/http"
)

// Kind values for Error.
const (
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindUpstream     = "upstream"
	KindUnexpected   = "unexpected"
)

// Error is returned by the actions of the api packages. Message is safe to
// show to clients; Cause is for server-side logs only.
type Error struct {
	Kind    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Kind + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "Forbidden"}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Upstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Cause: cause}
}

func Unexpected(message string, cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Cause: cause}
}

// From converts any error into an *Error. Unknown errors become unexpected
// with a generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unexpected("Internal server error", err)
}

// Is reports whether err carries the given kind.
func Is(err error, kind string) bool {
	e := From(err)
	return e != nil && e.Kind == kind
}

// HTTPStatus maps an error kind to the response status.
func HTTPStatus(err error) int {
	e := From(err)
	if e == nil {
		return http.StatusOK
	}
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
