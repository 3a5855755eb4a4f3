package dberr

import (
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrNotDatabaseError is returned by FromError when err carries neither a
// pgx nor a lib/pq server error.
var ErrNotDatabaseError = errors.New("dberr: not a database error")

// FromError extracts and validates the server error wrapped in err.
//
// pgx (*pgconn.PgError) is tried first, then lib/pq (*pq.Error). If
// neither is found the result is ErrNotDatabaseError. A driver error whose
// SQLSTATE is outside Codes() yields a *ValidationError.
func FromError(err error) (*Record, error) {
	if err == nil {
		return nil, ErrNotDatabaseError
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return Validate(pgErr)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return Validate(pqErr)
	}
	return nil, ErrNotDatabaseError
}

// CodeOf returns the code of the database error wrapped in err, if it is
// one of the known codes.
func CodeOf(err error) (Code, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ParseCode(pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return ParseCode(string(pqErr.Code))
	}
	return "", false
}

// PgErrorFields flattens a pgx server error into record keys. Empty
// optional fields are left out.
func PgErrorFields(e *pgconn.PgError) map[string]any {
	m := map[string]any{
		KeyCode:    e.Code,
		KeyDetail:  e.Detail,
		KeyMessage: e.Message,
	}
	severity := e.SeverityUnlocalized
	if severity == "" {
		severity = e.Severity
	}
	putString(m, KeySeverity, severity)
	putString(m, KeySeverityLocal, e.Severity)
	putString(m, KeyTableName, e.TableName)
	putString(m, KeySchemaName, e.SchemaName)
	putString(m, KeyConstraintName, e.ConstraintName)

	putString(m, "hint", e.Hint)
	putString(m, "where", e.Where)
	putString(m, "column_name", e.ColumnName)
	putString(m, "data_type_name", e.DataTypeName)
	putString(m, "internal_query", e.InternalQuery)
	putString(m, "file", e.File)
	putString(m, "routine", e.Routine)
	if e.Position != 0 {
		m["position"] = strconv.Itoa(int(e.Position))
	}
	if e.InternalPosition != 0 {
		m["internal_position"] = strconv.Itoa(int(e.InternalPosition))
	}
	if e.Line != 0 {
		m["line"] = strconv.Itoa(int(e.Line))
	}
	return m
}

// PQErrorFields flattens a lib/pq server error into record keys. Empty
// optional fields are left out.
func PQErrorFields(e *pq.Error) map[string]any {
	m := map[string]any{
		KeyCode:    string(e.Code),
		KeyDetail:  e.Detail,
		KeyMessage: e.Message,
	}
	putString(m, KeySeverity, e.Severity)
	putString(m, KeyTableName, e.Table)
	putString(m, KeySchemaName, e.Schema)
	putString(m, KeyConstraintName, e.Constraint)

	putString(m, "hint", e.Hint)
	putString(m, "where", e.Where)
	putString(m, "column_name", e.Column)
	putString(m, "data_type_name", e.DataTypeName)
	putString(m, "internal_query", e.InternalQuery)
	putString(m, "position", e.Position)
	putString(m, "internal_position", e.InternalPosition)
	putString(m, "file", e.File)
	putString(m, "line", e.Line)
	putString(m, "routine", e.Routine)
	return m
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}
