package envelope

// Code is a stable, machine-readable error identifier carried in the
// envelope body.
type Code string

const (
	// Generic
	CodeInternal   Code = "INTERNAL"
	CodeBadRequest Code = "BAD_REQUEST"
	CodeNotFound   Code = "NOT_FOUND"
	CodeConflict   Code = "CONFLICT"

	// Validation / auth
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"

	// Timeouts / cancellations
	CodeTimeout  Code = "TIMEOUT"
	CodeCanceled Code = "CANCELED"

	// Database
	CodeConstraintViolation    Code = "CONSTRAINT_VIOLATION"
	CodeInvalidData            Code = "INVALID_DATA"
	CodeDatabaseAccess         Code = "DATABASE_ACCESS"
	CodeDatabaseSchema         Code = "DATABASE_SCHEMA"
	CodeDatabaseUnavailable    Code = "DATABASE_UNAVAILABLE"
	CodeMalformedDatabaseError Code = "MALFORMED_DATABASE_ERROR"
)
