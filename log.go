package dberr

import (
	"log/slog"

	"go.uber.org/zap/zapcore"
)

// LogValue implements slog.LogValuer. Detail is left out because it
// usually echoes row values.
func (r *Record) LogValue() slog.Value {
	if r == nil {
		return slog.GroupValue()
	}
	attrs := []slog.Attr{
		slog.String("code", string(r.Code)),
		slog.String("name", r.Code.Name()),
		slog.String("category", string(r.Code.Category())),
		slog.String("message", r.Message),
	}
	if r.Severity != nil {
		attrs = append(attrs, slog.String("severity", *r.Severity))
	}
	if r.TableName != nil {
		attrs = append(attrs, slog.String("table", *r.TableName))
	}
	if r.SchemaName != nil {
		attrs = append(attrs, slog.String("schema", *r.SchemaName))
	}
	if r.ConstraintName != nil {
		attrs = append(attrs, slog.String("constraint", *r.ConstraintName))
	}
	if len(r.Extra) > 0 {
		attrs = append(attrs, slog.Int("extra_fields", len(r.Extra)))
	}
	return slog.GroupValue(attrs...)
}

// MarshalLogObject implements zapcore.ObjectMarshaler with the same fields
// as LogValue.
func (r *Record) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if r == nil {
		return nil
	}
	enc.AddString("code", string(r.Code))
	enc.AddString("name", r.Code.Name())
	enc.AddString("category", string(r.Code.Category()))
	enc.AddString("message", r.Message)
	if r.Severity != nil {
		enc.AddString("severity", *r.Severity)
	}
	if r.TableName != nil {
		enc.AddString("table", *r.TableName)
	}
	if r.SchemaName != nil {
		enc.AddString("schema", *r.SchemaName)
	}
	if r.ConstraintName != nil {
		enc.AddString("constraint", *r.ConstraintName)
	}
	if len(r.Extra) > 0 {
		enc.AddInt("extra_fields", len(r.Extra))
	}
	return nil
}

// LogValue implements slog.LogValuer.
func (e *ValidationError) LogValue() slog.Value {
	if e == nil {
		return slog.GroupValue()
	}
	attrs := make([]slog.Attr, 0, len(e.Violations)+1)
	attrs = append(attrs, slog.Int("violations", len(e.Violations)))
	for _, v := range e.Violations {
		field := v.Field
		if field == "" {
			field = "_"
		}
		attrs = append(attrs, slog.String(field, v.Message))
	}
	return slog.GroupValue(attrs...)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *ValidationError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if e == nil {
		return nil
	}
	enc.AddInt("violations", len(e.Violations))
	return enc.AddArray("fields", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, v := range e.Violations {
			if err := arr.AppendObject(v); err != nil {
				return err
			}
		}
		return nil
	}))
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (v Violation) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("field", v.Field)
	enc.AddString("kind", string(v.Kind))
	enc.AddString("message", v.Message)
	return nil
}
