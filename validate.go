package dberr

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var validate = validator.New()

func init() {
	// Report fields by their wire key.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := validate.RegisterValidation("sqlstate", func(fl validator.FieldLevel) bool {
		return Code(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
}

// requiredShape holds the required fields of a candidate. A field is nil
// when the key is missing or its value is not text; an empty string is
// present text.
type requiredShape struct {
	Code    *string `json:"code" validate:"required,sqlstate"`
	Detail  *string `json:"detail" validate:"required"`
	Message *string `json:"message" validate:"required"`
}

type optionalField struct {
	keys []string // canonical key first, then accepted aliases
	set  func(r *Record, v string)
}

var optionalFields = []optionalField{
	{keys: []string{KeySeverity}, set: func(r *Record, v string) { r.Severity = &v }},
	{keys: []string{KeySeverityLocal, "severityLocal"}, set: func(r *Record, v string) { r.SeverityLocal = &v }},
	{keys: []string{KeyTableName, "tableName"}, set: func(r *Record, v string) { r.TableName = &v }},
	{keys: []string{KeySchemaName, "schemaName"}, set: func(r *Record, v string) { r.SchemaName = &v }},
	{keys: []string{KeyConstraintName, "constraintName"}, set: func(r *Record, v string) { r.ConstraintName = &v }},
}

// Validate checks candidate against the database error shape.
//
// The code must be one of Codes(), detail and message must be text, and
// each optional field, when present, must be text. Every violation is
// collected before returning. Keys that are not part of the shape are
// copied into Record.Extra without inspection.
//
// candidate may be a map, a JSON document ([]byte, json.RawMessage or
// string), a *pgconn.PgError, a *pq.Error, a Record, or any struct that
// encodes to a JSON object. Anything else is reported as an invalid shape
// and validated as an empty object.
//
// The returned error is always a *ValidationError. Validate does not
// modify candidate and is safe for concurrent use.
func Validate(candidate any) (*Record, error) {
	var verr ValidationError

	obj, ok := normalize(candidate)
	if !ok {
		verr.add(invalidShape(candidate))
		obj = nil
	}

	rec := &Record{}
	consumed := make(map[string]struct{}, 8)

	shape := requiredShape{
		Code:    textPtr(obj, KeyCode),
		Detail:  textPtr(obj, KeyDetail),
		Message: textPtr(obj, KeyMessage),
	}
	consumed[KeyCode] = struct{}{}
	consumed[KeyDetail] = struct{}{}
	consumed[KeyMessage] = struct{}{}

	// validator reports every failing field in declaration order.
	if err := validate.Struct(shape); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			panic(err)
		}
		for _, fe := range fieldErrs {
			key := fe.Field()
			raw, present := obj[key]
			if key == KeyCode {
				verr.add(unrecognizedCode(key, raw, present && raw != nil))
			} else {
				verr.add(missingField(key, raw))
			}
		}
	}
	rec.Code = Code(deref(shape.Code))
	rec.Detail = deref(shape.Detail)
	rec.Message = deref(shape.Message)

	for _, f := range optionalFields {
		assigned := false
		for _, key := range f.keys {
			raw, present := obj[key]
			if !present {
				continue
			}
			consumed[key] = struct{}{}
			s, isText := text(raw)
			if !isText {
				verr.add(invalidType(key, raw))
				continue
			}
			if !assigned {
				f.set(rec, s)
				assigned = true
			}
		}
	}

	for k, v := range obj {
		if _, known := consumed[k]; known {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[k] = v
	}

	if len(verr.Violations) > 0 {
		return nil, &verr
	}
	return rec, nil
}

// ValidateJSON decodes data as a JSON object and validates it. Numbers in
// extra fields are kept as json.Number.
func ValidateJSON(data []byte) (*Record, error) {
	return Validate(json.RawMessage(data))
}

var jsonNumberType = reflect.TypeOf(json.Number(""))

func textPtr(obj map[string]any, key string) *string {
	s, ok := text(obj[key])
	if !ok {
		return nil
	}
	return &s
}

// text reports whether v is a string or a named string type. json.Number
// has string kind but is numeric, so it is rejected.
func text(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String || rv.Type() == jsonNumberType {
		return "", false
	}
	return rv.String(), true
}

func normalize(candidate any) (map[string]any, bool) {
	switch v := candidate.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, v != nil
	case map[string]string:
		if v == nil {
			return nil, false
		}
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	case json.RawMessage:
		return decodeObject(v)
	case []byte:
		return decodeObject(v)
	case string:
		return decodeObject([]byte(v))
	case *pgconn.PgError:
		if v == nil {
			return nil, false
		}
		return PgErrorFields(v), true
	case *pq.Error:
		if v == nil {
			return nil, false
		}
		return PQErrorFields(v), true
	case *Record:
		if v == nil {
			return nil, false
		}
		return v.fields(), true
	case Record:
		return v.fields(), true
	}

	rv := reflect.ValueOf(candidate)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
	default:
		return nil, false
	}
	data, err := json.Marshal(candidate)
	if err != nil {
		return nil, false
	}
	return decodeObject(data)
}

func decodeObject(data []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil || out == nil {
		return nil, false
	}
	// Anything after the object makes the document invalid.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, false
	}
	return out, true
}
