// Package httpvocab names the HTTP status codes and request methods used
// across the service, so handlers do not carry magic numbers or strings.
package httpvocab

import "net/http"

// Status is an HTTP response status code.
type Status int

const (
	OK             Status = 200
	Created        Status = 201
	NoContent      Status = 204
	BadRequest     Status = 400
	Unauthorized   Status = 401
	Forbidden      Status = 403
	NotFound       Status = 404
	Conflict       Status = 409
	InternalServer Status = 500
)

var allStatuses = [...]Status{
	OK,
	Created,
	NoContent,
	BadRequest,
	Unauthorized,
	Forbidden,
	NotFound,
	Conflict,
	InternalServer,
}

// Statuses returns every named status in ascending order.
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses[:])
	return out
}

// ParseStatus returns the named Status for code.
func ParseStatus(code int) (Status, bool) {
	s := Status(code)
	if !s.Valid() {
		return 0, false
	}
	return s, true
}

// Valid reports whether s is one of the named statuses.
func (s Status) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Int returns s as a plain int for APIs such as http.ResponseWriter.WriteHeader.
func (s Status) Int() int { return int(s) }

// Text returns the standard reason phrase ("Not Found").
func (s Status) Text() string { return http.StatusText(int(s)) }

// IsError reports whether s is a 4xx or 5xx status.
func (s Status) IsError() bool { return s >= 400 }
