package envelope

import (
	"context"
	"errors"
	"net"

	"github.com/blackwell-systems/dberr"
	"github.com/blackwell-systems/dberr/httpvocab"
)

// FieldErrors is a simple, library-agnostic validation shape.
type FieldErrors map[string]string

// ValidationDetails holds field-level validation errors.
type ValidationDetails struct {
	Fields FieldErrors `json:"fields"`
}

// Validation creates a validation error with field-level details.
func Validation(fields FieldErrors) *Error {
	return New(CodeValidationFailed, httpvocab.BadRequest, "").
		WithDetails(ValidationDetails{Fields: fields}).
		WithRetryable(false)
}

// BadRequest creates a bad request error (400).
func BadRequest(msg string) *Error {
	return New(CodeBadRequest, httpvocab.BadRequest, msg)
}

// Unauthorized creates an unauthorized error (401).
func Unauthorized(msg string) *Error {
	return New(CodeUnauthorized, httpvocab.Unauthorized, msg)
}

// Forbidden creates a forbidden error (403).
func Forbidden(msg string) *Error {
	return New(CodeForbidden, httpvocab.Forbidden, msg)
}

// NotFound creates a not found error (404).
func NotFound(msg string) *Error {
	return New(CodeNotFound, httpvocab.NotFound, msg)
}

// Conflict creates a conflict error (409).
func Conflict(msg string) *Error {
	return New(CodeConflict, httpvocab.Conflict, msg)
}

// Internal creates an internal error (500).
func Internal(msg string) *Error {
	return New(CodeInternal, httpvocab.InternalServer, msg)
}

// FromRecord maps a validated database failure onto an envelope.
//
// The record's detail and message are never copied into the body since
// they can echo row values. Details carry the SQLSTATE and, when known,
// the table and constraint names.
func FromRecord(rec *dberr.Record) *Error {
	if rec == nil {
		return nil
	}

	var e *Error
	switch rec.Code.Category() {
	case dberr.CategoryConstraint:
		switch rec.Code {
		case dberr.UniqueConstraintViolation:
			e = New(CodeConflict, httpvocab.Conflict, "Resource already exists")
		case dberr.ExclusionConstraintViolation:
			e = New(CodeConflict, httpvocab.Conflict, "Resource conflicts with an existing one")
		case dberr.ForeignKeyViolation:
			e = New(CodeConstraintViolation, httpvocab.BadRequest, "Referenced resource does not exist")
		default:
			e = New(CodeConstraintViolation, httpvocab.BadRequest, "")
		}
	case dberr.CategoryData:
		e = New(CodeInvalidData, httpvocab.BadRequest, "")
	case dberr.CategoryConcurrency:
		e = New(CodeConflict, httpvocab.Conflict, "Concurrent update conflict")
	case dberr.CategoryAuthentication, dberr.CategoryPrivilege:
		e = New(CodeDatabaseAccess, httpvocab.InternalServer, "")
	case dberr.CategorySchema:
		e = New(CodeDatabaseSchema, httpvocab.InternalServer, "")
	case dberr.CategoryInfrastructure:
		e = New(CodeDatabaseUnavailable, httpvocab.InternalServer, "")
	default:
		e = New(CodeInternal, httpvocab.InternalServer, "")
	}

	d := map[string]any{"sqlstate": string(rec.Code)}
	if t := rec.Table(); t != "" {
		d["table"] = t
	}
	if c := rec.Constraint(); c != "" {
		d["constraint"] = c
	}
	return e.WithDetails(d).WithRetryable(rec.Code.Transient())
}

// FromValidation reports a database failure whose payload did not have
// the expected shape. This is a server-side fault, so the status is 500;
// the offending fields are listed in the details.
func FromValidation(ve *dberr.ValidationError) *Error {
	if ve == nil {
		return nil
	}
	e := Wrap(CodeMalformedDatabaseError, httpvocab.InternalServer, "", ve)
	return e.WithDetails(ValidationDetails{Fields: FieldErrors(ve.Fields())}).
		WithRetryable(false)
}

// From maps arbitrary errors into an *Error.
// Handles database driver errors, context errors, network timeouts, and
// wraps unknown errors.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		c := *e
		if c.Status == 0 {
			c.Status = httpvocab.InternalServer
		}
		if c.Message == "" {
			c.Message = defaultMessage(c.Code)
		}
		return &c
	}

	// Database
	rec, dbErr := dberr.FromError(err)
	if dbErr == nil {
		out := FromRecord(rec)
		out.Cause = err
		return out
	}
	var ve *dberr.ValidationError
	if errors.As(dbErr, &ve) || errors.As(err, &ve) {
		out := FromValidation(ve)
		out.Cause = err
		return out
	}

	// Context-driven
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(CodeTimeout, httpvocab.InternalServer, "", err)
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(CodeCanceled, httpvocab.BadRequest, "", err)
	}

	// net.Error timeouts, such as a dial or read timeout to the database
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Wrap(CodeTimeout, httpvocab.InternalServer, "", err)
	}

	// Default
	return Wrap(CodeInternal, httpvocab.InternalServer, "", err).
		WithRetryable(false)
}
