// Package apperr defines the error taxonomy shared by services and the HTTP boundary.
package apperr

import (
	"errors"
	"net/http"
)

// Kind tags an Error with its place in the taxonomy.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindValidationFailed
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindBadGateway
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBadGateway:
		return "bad_gateway"
	case KindInternal:
		return "internal"
	}
	return "internal"
}

// FieldError describes one violated field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the tagged error returned by services. Message is safe to show to clients;
// Err carries the underlying cause and is only exposed as a diagnostic.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	// UpstreamStatus is set for KindBadGateway errors.
	UpstreamStatus int
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int { return Status(e.Kind) }

// Status maps a Kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindBadRequest, KindValidationFailed:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBadGateway:
		return http.StatusBadGateway
	case KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

// ValidationFailed builds a validation error enumerating every violated field.
func ValidationFailed(fields []FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: "Validation failed", Fields: fields}
}

// BadGateway reports an upstream failure with the upstream's status and message.
func BadGateway(status int, msg string, cause error) *Error {
	return &Error{Kind: KindBadGateway, Message: msg, UpstreamStatus: status, Err: cause}
}

// Internal wraps an unexpected error.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Server error", Err: cause}
}

// From returns err as an *Error, wrapping anything untagged as Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}
