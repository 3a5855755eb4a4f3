// Package render holds the error rendering shared by the router integrations.
package render

import (
	"log/slog"
	"net/http"

	"github.com/blackwell-systems/dberr/envelope"
	"github.com/blackwell-systems/dberr/httpvocab"
	"github.com/blackwell-systems/dberr/metrics"
)

// Options controls what happens around envelope.Write.
type Options struct {
	Collector *metrics.Collector
	Logger    *slog.Logger
}

// Option configures Options.
type Option func(*Options)

// WithCollector counts every rendered database error in c.
func WithCollector(c *metrics.Collector) Option {
	return func(o *Options) { o.Collector = c }
}

// WithLogger logs every rendered error to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// New applies opts.
func New(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Write observes err, logs the resulting envelope and writes it.
func (o Options) Write(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		envelope.Write(w, r, nil)
		return
	}

	o.Collector.Observe(err)

	e := envelope.From(err)
	if e.TraceID == "" {
		e.TraceID = envelope.TraceIDFromRequest(r)
	}
	if o.Logger != nil {
		level := slog.LevelWarn
		if e.Status >= httpvocab.InternalServer {
			level = slog.LevelError
		}
		o.Logger.LogAttrs(r.Context(), level, "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", e),
		)
	}
	envelope.Write(w, r, e)
}
