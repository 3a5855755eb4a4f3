// Package envelope renders errors, database failures included, as a
// consistent JSON body for HTTP APIs: code, message, details, trace_id and
// retryable.
package envelope

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/blackwell-systems/dberr/httpvocab"
)

// Error is a structured error envelope for HTTP APIs.
type Error struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
	Retryable bool   `json:"retryable"`

	// Not serialized:
	Status httpvocab.Status `json:"-"`
	Cause  error            `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	if e == nil {
		return slog.GroupValue()
	}
	attrs := []slog.Attr{
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
		slog.Int("status", e.Status.Int()),
		slog.Bool("retryable", e.Retryable),
	}
	if e.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", e.TraceID))
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	return slog.GroupValue(attrs...)
}

// New creates a new Error with the given code, HTTP status, and message.
// If status is 0, defaults to 500. If message is empty, uses a default.
func New(code Code, status httpvocab.Status, msg string) *Error {
	if status == 0 {
		status = httpvocab.InternalServer
	}
	if msg == "" {
		msg = defaultMessage(code)
	}
	return &Error{
		Code:      code,
		Message:   msg,
		Status:    status,
		Retryable: isRetryableDefault(code),
	}
}

// Wrap creates a new Error that wraps an underlying cause.
func Wrap(code Code, status httpvocab.Status, msg string, cause error) *Error {
	e := New(code, status, msg)
	e.Cause = cause
	return e
}

// The With* builders return a modified copy; the receiver is left as is.

// WithDetails adds structured details to the error.
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

// WithTraceID adds a trace ID for distributed tracing.
func (e *Error) WithTraceID(id string) *Error {
	c := *e
	c.TraceID = id
	return &c
}

// WithRetryable sets whether the error is retryable.
func (e *Error) WithRetryable(v bool) *Error {
	c := *e
	c.Retryable = v
	return &c
}

// WithStatus overrides the HTTP status code.
func (e *Error) WithStatus(status httpvocab.Status) *Error {
	c := *e
	if status != 0 {
		c.Status = status
	}
	return &c
}

// Is checks if an error has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func defaultMessage(code Code) string {
	switch code {
	case CodeBadRequest:
		return "Bad request"
	case CodeValidationFailed:
		return "Invalid input"
	case CodeUnauthorized:
		return "Unauthorized"
	case CodeForbidden:
		return "Forbidden"
	case CodeNotFound:
		return "Not found"
	case CodeConflict:
		return "Conflict"
	case CodeTimeout:
		return "Request timed out"
	case CodeCanceled:
		return "Request canceled"
	case CodeConstraintViolation:
		return "Request violates a data constraint"
	case CodeInvalidData:
		return "Invalid data value"
	case CodeDatabaseAccess, CodeDatabaseSchema, CodeMalformedDatabaseError:
		return "Database error"
	case CodeDatabaseUnavailable:
		return "Database unavailable"
	default:
		return "Internal error"
	}
}

func isRetryableDefault(code Code) bool {
	switch code {
	case CodeTimeout, CodeDatabaseUnavailable:
		return true
	default:
		return false
	}
}
