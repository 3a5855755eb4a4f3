package dberr

// Category groups codes by the kind of failure they describe.
type Category string

const (
	CategoryUnknown        Category = "unknown"
	CategoryConstraint     Category = "constraint"
	CategoryAuthentication Category = "authentication"
	CategoryPrivilege      Category = "privilege"
	CategoryData           Category = "data"
	CategoryConcurrency    Category = "concurrency"
	CategorySchema         Category = "schema"
	CategoryInfrastructure Category = "infrastructure"
)

// Category returns the failure category for c.
func (c Code) Category() Category {
	switch c {
	case UniqueConstraintViolation, ForeignKeyViolation,
		CheckConstraintViolation, ExclusionConstraintViolation:
		return CategoryConstraint
	case InvalidCredentials, InvalidPassword:
		return CategoryAuthentication
	case InsufficientPrivilege:
		return CategoryPrivilege
	case DivisionByZero, StringDataRightTruncation, InvalidTextRepresentation,
		NumericValueOutOfRange, NullValueNotAllowed:
		return CategoryData
	case SerializationFailure, DeadlockDetected:
		return CategoryConcurrency
	case SyntaxError, UndefinedTable, UndefinedColumn, AmbiguousColumn:
		return CategorySchema
	case ConnectionFailure, DiskFull, OutOfMemory:
		return CategoryInfrastructure
	default:
		return CategoryUnknown
	}
}

// Transient reports whether the same statement may succeed if issued again
// unchanged. Callers decide whether to act on it.
func (c Code) Transient() bool {
	switch c {
	case SerializationFailure, DeadlockDetected, ConnectionFailure:
		return true
	default:
		return false
	}
}
