// Package errors provides the structured error used across juryduty
// import it as perr so it never shadows the standard library package
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing classification of an error
// values are part of the wire contract so only append
type ErrorCode uint16

const (
	// ErrorCodeUnknown is anything we could not classify
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks a panic caught by the recover middleware
	ErrorCodePanic

	// ErrorCodeUnavailable is a transient dependency failure
	ErrorCodeUnavailable

	// ErrorCodeTooManyRequests is upstream or local rate limiting
	ErrorCodeTooManyRequests

	// ErrorCodeConflict is a state conflict such as an answered dispute or a repeat vote
	ErrorCodeConflict

	// ErrorCodeNotFound is a missing dispute or a bad challenge token
	ErrorCodeNotFound

	// ErrorCodeValidation is rejected input
	ErrorCodeValidation

	// ErrorCodeJSON is a malformed request body
	ErrorCodeJSON

	// ErrorCodeInvalidArgument is a well formed but unusable parameter
	ErrorCodeInvalidArgument

	// ErrorCodeDuplicateKey is a unique constraint violation
	ErrorCodeDuplicateKey

	// ErrorCodeDB is any other database failure
	ErrorCodeDB

	// ErrorCodeLocked is a response slot held by another session
	ErrorCodeLocked

	// ErrorCodeUpstream is a failed call to the verdict generator
	ErrorCodeUpstream
)

// HTTPStatusCode maps a code to the status written by transports
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrorCodeConflict, ErrorCodeDuplicateKey:
		return http.StatusConflict
	case ErrorCodeLocked:
		return http.StatusLocked
	case ErrorCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrNotFound is the generic missing row error returned by store helpers
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a message safe to show callers and an optional cause
// details is an optional payload rendered next to the message, e.g. vote counts on a 409
type Error struct {
	orig    error
	msg     string
	code    ErrorCode
	field   string
	op      string
	details any
}

// Wire is the JSON form of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Details any       `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.orig)
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *Error) Unwrap() error { return e.orig }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Message returns the caller facing message without the cause
func (e *Error) Message() string { return e.msg }

// Field returns the offending input field if one was attached
func (e *Error) Field() string { return e.field }

// Op returns the operation label if one was attached
func (e *Error) Op() string { return e.op }

// Details returns the attached payload
func (e *Error) Details() any { return e.details }

// ToWire converts to the transport shape; the cause never leaves the process
func (e *Error) ToWire() Wire {
	return Wire{Code: e.code, Message: e.msg, Field: e.field, Details: e.details}
}

// WireFrom converts any error to a Wire, foreign errors become Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// As finds the first *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Root walks the chain to the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// CodeOf returns the code of the first *Error in the chain or Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// HTTP returns status and wire for handlers that write their own bodies
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// copy-on-write mutators, foreign errors pass through untouched

// WithField attaches the offending input field
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// WithOp attaches an operation label used in logs
func WithOp(err error, op string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.op = op
	return &c
}

// WithDetails attaches a payload that transports render with the error
func WithDetails(err error, details any) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.details = details
	return &c
}

// New builds an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an *Error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap builds an *Error around orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf builds an *Error around orig with a formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf is Wrap that passes nil through
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// NotFoundf builds a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// Validationf builds a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// InvalidArgf builds an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Conflictf builds a conflict error
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// Lockedf builds a locked error
func Lockedf(format string, a ...any) error { return Newf(ErrorCodeLocked, format, a...) }

// Upstreamf builds an upstream failure error
func Upstreamf(format string, a ...any) error { return Newf(ErrorCodeUpstream, format, a...) }

// Unavailablef builds an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// JSONErrf builds a malformed body error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf builds a recovered panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Internalf builds an unclassified error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }
