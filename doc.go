// Package dberr classifies PostgreSQL failures reported by database
// drivers.
//
// Code is the closed set of SQLSTATE tokens the package understands.
// Validate turns an untrusted error payload (a decoded JSON object, a map,
// or a pgx / lib/pq error value) into a Record, or reports every field that
// does not fit the expected shape in a *ValidationError. Fields outside the
// known shape are carried through untouched in Record.Extra.
//
//	rec, err := dberr.FromError(err)
//	if err == nil && rec.Code == dberr.UniqueConstraintViolation {
//	    // duplicate key
//	}
package dberr
