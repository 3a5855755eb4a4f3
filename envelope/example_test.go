package envelope_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/blackwell-systems/dberr/envelope"
	"github.com/blackwell-systems/dberr/httpvocab"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ExampleWrite_uniqueViolation shows a duplicate key reported by pgx turning
// into a 409 envelope.
func ExampleWrite_uniqueViolation() {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fmt.Errorf("create user: %w", &pgconn.PgError{
			Code:           "23505",
			Message:        "duplicate key value violates unique constraint",
			ConstraintName: "users_email_key",
		})
		envelope.Write(w, r, err)
	})

	req := httptest.NewRequest(string(httpvocab.POST), "/users", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	fmt.Printf("Status: %d\n", w.Code)
	fmt.Printf("Content-Type: %s\n", w.Header().Get("Content-Type"))
	// Output:
	// Status: 409
	// Content-Type: application/json
}

// ExampleWrite_validation demonstrates handling validation errors with field details.
func ExampleWrite_validation() {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "" {
			envelope.Write(w, r, envelope.Validation(envelope.FieldErrors{
				"email": "is required",
			}))
			return
		}
		w.WriteHeader(httpvocab.OK.Int())
	})

	req := httptest.NewRequest(string(httpvocab.GET), "/signup", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	fmt.Printf("Status: %d\n", w.Code)
	// Output:
	// Status: 400
}

// ExampleFrom demonstrates mapping a lib/pq deadlock to an envelope.
func ExampleFrom() {
	e := envelope.From(&pq.Error{Code: "40P01", Message: "deadlock detected"})

	fmt.Printf("Code: %s\n", e.Code)
	fmt.Printf("Status: %d\n", e.Status)
	fmt.Printf("Retryable: %v\n", e.Retryable)
	// Output:
	// Code: CONFLICT
	// Status: 409
	// Retryable: true
}

// ExampleTraceMiddleware demonstrates adding trace ID middleware.
func ExampleTraceMiddleware() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		traceID := envelope.GetTraceID(r.Context())
		fmt.Printf("Trace ID present: %v\n", traceID != "")
		w.WriteHeader(httpvocab.OK.Int())
	})

	handler := envelope.TraceMiddleware(mux)

	req := httptest.NewRequest(string(httpvocab.GET), "/api/user", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	// Output:
	// Trace ID present: true
}
