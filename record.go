package dberr

import (
	"encoding/json"
	"maps"
)

// Wire keys of the known record fields.
const (
	KeyCode           = "code"
	KeyDetail         = "detail"
	KeyMessage        = "message"
	KeySeverity       = "severity"
	KeySeverityLocal  = "severity_local"
	KeyTableName      = "table_name"
	KeySchemaName     = "schema_name"
	KeyConstraintName = "constraint_name"
)

// Record is a validated data-store failure.
//
// It is an open record: keys beyond the known ones are kept in Extra
// exactly as they were received. Records are only produced by Validate
// and its wrappers, so Code is always one of Codes().
type Record struct {
	Code    Code
	Detail  string
	Message string

	Severity       *string
	SeverityLocal  *string
	TableName      *string
	SchemaName     *string
	ConstraintName *string

	// Extra holds the keys outside the known shape. Its keys must not
	// collide with the known wire keys or their camelCase aliases
	// (tableName, schemaName, constraintName, severityLocal): when a Record
	// is validated again such a key is read as the known field.
	Extra map[string]any
}

// Get returns the value stored under key, looking at the known fields
// first and Extra second.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.fields()[key]
	return v, ok
}

// Table returns the table name or "".
func (r *Record) Table() string { return deref(r.TableName) }

// Schema returns the schema name or "".
func (r *Record) Schema() string { return deref(r.SchemaName) }

// Constraint returns the constraint name or "".
func (r *Record) Constraint() string { return deref(r.ConstraintName) }

// Category is shorthand for r.Code.Category().
func (r *Record) Category() Category { return r.Code.Category() }

// MarshalJSON writes the known fields and every extra field as one object.
// Known fields win over extras with the same key.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields())
}

// UnmarshalJSON validates data and stores the result. A shape violation is
// returned as *ValidationError.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := ValidateJSON(data)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

func (r *Record) fields() map[string]any {
	out := make(map[string]any, len(r.Extra)+8)
	maps.Copy(out, r.Extra)
	out[KeyCode] = string(r.Code)
	out[KeyDetail] = r.Detail
	out[KeyMessage] = r.Message
	setOptional(out, KeySeverity, r.Severity)
	setOptional(out, KeySeverityLocal, r.SeverityLocal)
	setOptional(out, KeyTableName, r.TableName)
	setOptional(out, KeySchemaName, r.SchemaName)
	setOptional(out, KeyConstraintName, r.ConstraintName)
	return out
}

func setOptional(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
