// Package metrics counts classified database failures with Prometheus.
package metrics

import (
	"errors"

	"github.com/blackwell-systems/dberr"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus counters for database failures.
type Collector struct {
	recordsTotal    *prometheus.CounterVec
	violationsTotal *prometheus.CounterVec
}

// Options configures metric names.
type Options struct {
	// Namespace is the Prometheus namespace for metrics
	// Default: "dberr"
	Namespace string

	// Subsystem is the Prometheus subsystem for metrics
	// Default: "" (empty)
	Subsystem string
}

// DefaultOptions returns the options used by most services.
func DefaultOptions() Options {
	return Options{
		Namespace: "dberr",
		Subsystem: "",
	}
}

// NewCollector creates the counters and registers them with reg.
//
// Metrics tracked:
//   - dberr_records_total{code,category} - driver errors that validated
//   - dberr_violations_total{field,kind} - violations in payloads that did not
//
// Example:
//
//	c, err := metrics.NewCollector(prometheus.DefaultRegisterer, metrics.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	rec := c.Observe(err)
func NewCollector(reg prometheus.Registerer, opts Options) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "records_total",
				Help:      "Total number of classified database errors",
			},
			[]string{"code", "category"},
		),
		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Subsystem: opts.Subsystem,
				Name:      "violations_total",
				Help:      "Total number of field violations in malformed database errors",
			},
			[]string{"field", "kind"},
		),
	}

	if err := reg.Register(c.recordsTotal); err != nil {
		return nil, err
	}
	if err := reg.Register(c.violationsTotal); err != nil {
		reg.Unregister(c.recordsTotal)
		return nil, err
	}
	return c, nil
}

// Observe classifies err and counts the outcome. It returns the validated
// record, or nil when err carries no usable database error. Errors that are
// not database errors at all are not counted.
func (c *Collector) Observe(err error) *dberr.Record {
	if c == nil || err == nil {
		return nil
	}

	rec, dbErr := dberr.FromError(err)
	if dbErr == nil {
		c.recordsTotal.WithLabelValues(string(rec.Code), string(rec.Category())).Inc()
		return rec
	}

	var ve *dberr.ValidationError
	if errors.As(dbErr, &ve) || errors.As(err, &ve) {
		c.ObserveValidation(ve)
	}
	return nil
}

// ObserveValidation counts every violation in ve.
func (c *Collector) ObserveValidation(ve *dberr.ValidationError) {
	if c == nil || ve == nil {
		return
	}
	for _, v := range ve.Violations {
		c.violationsTotal.WithLabelValues(v.Field, string(v.Kind)).Inc()
	}
}
