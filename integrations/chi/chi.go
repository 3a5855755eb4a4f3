// Package chi adapts the envelope error format to the chi router.
//
// Chi uses standard net/http handlers, so envelope.TraceMiddleware and
// envelope.Write work directly. Handle lets handlers return errors instead.
package chi

import (
	"net/http"

	"github.com/blackwell-systems/dberr/envelope"
	"github.com/blackwell-systems/dberr/integrations/internal/render"
)

// Option configures error rendering.
type Option = render.Option

var (
	// WithCollector counts rendered database errors.
	WithCollector = render.WithCollector
	// WithLogger logs rendered errors.
	WithLogger = render.WithLogger
)

// HandlerFunc is an http.HandlerFunc that can fail.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Trace is envelope.TraceMiddleware as chi middleware.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(chi.Trace)
func Trace(next http.Handler) http.Handler {
	return envelope.TraceMiddleware(next)
}

// Write sends err as an envelope.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	envelope.Write(w, r, err)
}

// Handle adapts fn to chi. A non-nil error from fn is rendered as an
// envelope; on success fn owns the response.
//
// Example:
//
//	r.Post("/users", chi.Handle(func(w http.ResponseWriter, r *http.Request) error {
//	    _, err := db.ExecContext(r.Context(), insertUser, email)
//	    return err
//	}, chi.WithCollector(collector)))
func Handle(fn HandlerFunc, opts ...Option) http.HandlerFunc {
	o := render.New(opts...)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			o.Write(w, r, err)
		}
	}
}
