package dberr

// Code is a PostgreSQL SQLSTATE token identifying a data-store failure.
//
// The set is closed: only the constants below are valid. Use Valid or
// ParseCode before trusting a value that came from outside the process.
type Code string

const (
	// Integrity constraints (class 23)
	UniqueConstraintViolation    Code = "23505"
	ForeignKeyViolation          Code = "23503"
	CheckConstraintViolation     Code = "23514"
	ExclusionConstraintViolation Code = "23P01"

	// Authorization (classes 28, 42)
	InvalidCredentials    Code = "28000"
	InvalidPassword       Code = "28P01"
	InsufficientPrivilege Code = "42501"

	// Data exceptions (class 22)
	DivisionByZero            Code = "22012"
	StringDataRightTruncation Code = "22001"
	InvalidTextRepresentation Code = "22P02"
	NumericValueOutOfRange    Code = "22003"
	NullValueNotAllowed       Code = "22004"

	// Transaction rollback (class 40)
	SerializationFailure Code = "40001"
	DeadlockDetected     Code = "40P01"

	// Syntax and schema (class 42)
	SyntaxError     Code = "42601"
	UndefinedTable  Code = "42P01"
	UndefinedColumn Code = "42703"
	AmbiguousColumn Code = "42702"

	// Infrastructure (classes 08, 53)
	ConnectionFailure Code = "08006"
	DiskFull          Code = "53100"
	OutOfMemory       Code = "53200"
)

var allCodes = [...]Code{
	UniqueConstraintViolation,
	ForeignKeyViolation,
	CheckConstraintViolation,
	ExclusionConstraintViolation,
	InvalidCredentials,
	InvalidPassword,
	InsufficientPrivilege,
	DivisionByZero,
	StringDataRightTruncation,
	InvalidTextRepresentation,
	NumericValueOutOfRange,
	NullValueNotAllowed,
	SerializationFailure,
	DeadlockDetected,
	SyntaxError,
	UndefinedTable,
	UndefinedColumn,
	AmbiguousColumn,
	ConnectionFailure,
	DiskFull,
	OutOfMemory,
}

var codeNames = map[Code]string{
	UniqueConstraintViolation:    "UniqueConstraintViolation",
	ForeignKeyViolation:          "ForeignKeyViolation",
	CheckConstraintViolation:     "CheckConstraintViolation",
	ExclusionConstraintViolation: "ExclusionConstraintViolation",
	InvalidCredentials:           "InvalidCredentials",
	InvalidPassword:              "InvalidPassword",
	InsufficientPrivilege:        "InsufficientPrivilege",
	DivisionByZero:               "DivisionByZero",
	StringDataRightTruncation:    "StringDataRightTruncation",
	InvalidTextRepresentation:    "InvalidTextRepresentation",
	NumericValueOutOfRange:       "NumericValueOutOfRange",
	NullValueNotAllowed:          "NullValueNotAllowed",
	SerializationFailure:         "SerializationFailure",
	DeadlockDetected:             "DeadlockDetected",
	SyntaxError:                  "SyntaxError",
	UndefinedTable:               "UndefinedTable",
	UndefinedColumn:              "UndefinedColumn",
	AmbiguousColumn:              "AmbiguousColumn",
	ConnectionFailure:            "ConnectionFailure",
	DiskFull:                     "DiskFull",
	OutOfMemory:                  "OutOfMemory",
}

// Codes returns every known code in declaration order.
func Codes() []Code {
	out := make([]Code, len(allCodes))
	copy(out, allCodes[:])
	return out
}

// ParseCode returns the Code for an exact SQLSTATE token.
func ParseCode(s string) (Code, bool) {
	c := Code(s)
	if !c.Valid() {
		return "", false
	}
	return c, true
}

// Valid reports whether c is one of the known codes.
func (c Code) Valid() bool {
	_, ok := codeNames[c]
	return ok
}

// Name returns the symbolic name, e.g. "UniqueConstraintViolation".
// Unknown codes have an empty name.
func (c Code) Name() string {
	return codeNames[c]
}

func (c Code) String() string { return string(c) }

// Class returns the two-character SQLSTATE class ("23" for integrity
// constraint violations).
func (c Code) Class() string {
	if len(c) < 2 {
		return ""
	}
	return string(c[:2])
}
