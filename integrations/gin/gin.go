// Package gin adapts the envelope error format to the Gin framework.
package gin

import (
	"net/http"

	"github.com/blackwell-systems/dberr/envelope"
	"github.com/blackwell-systems/dberr/integrations/internal/render"
	"github.com/gin-gonic/gin"
)

// Option configures error rendering.
type Option = render.Option

var (
	// WithCollector counts rendered database errors.
	WithCollector = render.WithCollector
	// WithLogger logs rendered errors.
	WithLogger = render.WithLogger
)

// Trace wires envelope trace ID middleware into Gin's middleware chain.
//
// The ID is available via envelope.TraceIDFromRequest(c.Request).
//
// Example:
//
//	r := gin.New()
//	r.Use(Trace())
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		handler := envelope.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// Write sends err as an envelope.
//
// Example:
//
//	r.GET("/user", func(c *gin.Context) {
//	    if userID == "" {
//	        Write(c, envelope.BadRequest("Missing user ID"))
//	        return
//	    }
//	})
func Write(c *gin.Context, err error) {
	envelope.Write(c.Writer, c.Request, err)
}

// Errors renders the last error attached with c.Error once the chain has
// run, unless a response was already written.
//
// Example:
//
//	r.Use(Trace(), Errors(WithLogger(logger)))
//	r.POST("/users", func(c *gin.Context) {
//	    if _, err := db.ExecContext(c, insertUser, email); err != nil {
//	        _ = c.Error(err)
//	    }
//	})
func Errors(opts ...Option) gin.HandlerFunc {
	o := render.New(opts...)
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		o.Write(c.Writer, c.Request, last.Err)
	}
}
