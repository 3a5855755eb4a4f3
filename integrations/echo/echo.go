// Package echo adapts the envelope error format to the Echo framework.
package echo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blackwell-systems/dberr/envelope"
	"github.com/blackwell-systems/dberr/httpvocab"
	"github.com/blackwell-systems/dberr/integrations/internal/render"
	echofw "github.com/labstack/echo/v4"
)

// Option configures error rendering.
type Option = render.Option

var (
	// WithCollector counts rendered database errors.
	WithCollector = render.WithCollector
	// WithLogger logs rendered errors.
	WithLogger = render.WithLogger
)

// Trace adapts envelope trace middleware to Echo's middleware interface.
//
// The ID is available via envelope.TraceIDFromRequest(c.Request()).
//
// Example:
//
//	e := echo.New()
//	e.Use(Trace)
func Trace(next echofw.HandlerFunc) echofw.HandlerFunc {
	return func(c echofw.Context) error {
		var err error
		handler := envelope.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.SetRequest(r)
			err = next(c)
		}))

		handler.ServeHTTP(c.Response().Writer, c.Request())
		return err
	}
}

// Write sends err as an envelope.
//
// Example:
//
//	e.GET("/user", func(c echo.Context) error {
//	    if userID == "" {
//	        return Write(c, envelope.BadRequest("Missing user ID"))
//	    }
//	    return nil
//	})
func Write(c echofw.Context, err error) error {
	envelope.Write(c.Response(), c.Request(), err)
	return nil
}

// ErrorHandler returns an echo.HTTPErrorHandler that renders handler errors
// as envelopes. An *echo.HTTPError wrapping an internal error renders the
// internal error; otherwise its status selects the envelope.
//
// Example:
//
//	e := echo.New()
//	e.HTTPErrorHandler = ErrorHandler(WithLogger(logger))
func ErrorHandler(opts ...Option) echofw.HTTPErrorHandler {
	o := render.New(opts...)
	return func(err error, c echofw.Context) {
		if c.Response().Committed {
			return
		}
		var he *echofw.HTTPError
		if errors.As(err, &he) {
			if he.Internal != nil {
				err = he.Internal
			} else {
				err = fromHTTPError(he)
			}
		}
		o.Write(c.Response(), c.Request(), err)
	}
}

func fromHTTPError(he *echofw.HTTPError) *envelope.Error {
	msg := ""
	if s, ok := he.Message.(string); ok {
		msg = s
	} else if he.Message != nil {
		msg = fmt.Sprint(he.Message)
	}

	status, ok := httpvocab.ParseStatus(he.Code)
	if !ok {
		if he.Code >= 500 {
			return envelope.Internal(msg)
		}
		return envelope.BadRequest(msg)
	}
	switch status {
	case httpvocab.Unauthorized:
		return envelope.Unauthorized(msg)
	case httpvocab.Forbidden:
		return envelope.Forbidden(msg)
	case httpvocab.NotFound:
		return envelope.NotFound(msg)
	case httpvocab.Conflict:
		return envelope.Conflict(msg)
	case httpvocab.InternalServer:
		return envelope.Internal(msg)
	default:
		return envelope.BadRequest(msg)
	}
}
