package dberr

import (
	"errors"
	"fmt"
	"strings"
)

// ViolationKind classifies a single shape violation.
type ViolationKind string

const (
	KindUnrecognizedCode ViolationKind = "unrecognized_code"
	KindMissingField     ViolationKind = "missing_field"
	KindInvalidType      ViolationKind = "invalid_type"
	KindInvalidShape     ViolationKind = "invalid_shape"
)

// Violation describes one field that failed its constraint.
type Violation struct {
	// Field is the key as it appeared in the input. It is empty for
	// KindInvalidShape, which concerns the candidate as a whole.
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Value   any           `json:"value,omitempty"`
	Message string        `json:"message"`
}

// FieldErrors maps a field name to its violation message.
type FieldErrors map[string]string

// ValidationError lists every violation found in a candidate. Validate
// never stops at the first problem, so Violations is complete.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "invalid database error"
	}
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "invalid database error: " + strings.Join(msgs, "; ")
}

// Has reports whether field has at least one violation.
func (e *ValidationError) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Fields projects the violations onto a field-to-message map. A field with
// more than one violation keeps its messages joined with " || ".
func (e *ValidationError) Fields() FieldErrors {
	if e == nil {
		return nil
	}
	out := make(FieldErrors, len(e.Violations))
	for _, v := range e.Violations {
		if existing, ok := out[v.Field]; ok {
			out[v.Field] = existing + " || " + v.Message
			continue
		}
		out[v.Field] = v.Message
	}
	return out
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (e *ValidationError) add(v Violation) {
	e.Violations = append(e.Violations, v)
}

func unrecognizedCode(key string, value any, present bool) Violation {
	shown := "<missing>"
	if present {
		shown = fmt.Sprintf("%v", value)
	}
	return Violation{
		Field:   key,
		Kind:    KindUnrecognizedCode,
		Value:   value,
		Message: "unrecognized or missing error code: " + shown,
	}
}

func missingField(key string, value any) Violation {
	return Violation{
		Field:   key,
		Kind:    KindMissingField,
		Value:   value,
		Message: fmt.Sprintf("missing required text field `%s`", key),
	}
}

func invalidType(key string, value any) Violation {
	return Violation{
		Field:   key,
		Kind:    KindInvalidType,
		Value:   value,
		Message: fmt.Sprintf("invalid type for optional field `%s`", key),
	}
}

func invalidShape(candidate any) Violation {
	return Violation{
		Kind:    KindInvalidShape,
		Message: fmt.Sprintf("expected an object, got %T", candidate),
	}
}
