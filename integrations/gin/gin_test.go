package gin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blackwell-systems/dberr/envelope"
	"github.com/blackwell-systems/dberr/httpvocab"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTrace(t *testing.T) {
	r := gin.New()
	r.Use(Trace())

	r.GET("/test", func(c *gin.Context) {
		if envelope.TraceIDFromRequest(c.Request) == "" {
			t.Error("expected trace ID to be set")
		}
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(string(httpvocab.GET), "/test", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestTraceWithExistingHeader(t *testing.T) {
	r := gin.New()
	r.Use(Trace())

	r.GET("/test", func(c *gin.Context) {
		if got := envelope.GetTraceID(c.Request.Context()); got != "existing-trace-id-123" {
			t.Errorf("expected existing trace ID, got %s", got)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(string(httpvocab.GET), "/test", nil)
	req.Header.Set(envelope.HeaderTraceID, "existing-trace-id-123")
	r.ServeHTTP(httptest.NewRecorder(), req)
}

func TestWrite(t *testing.T) {
	r := gin.New()
	r.Use(Trace())

	r.GET("/error", func(c *gin.Context) {
		Write(c, envelope.NotFound("user not found"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(string(httpvocab.GET), "/error", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["code"] != "NOT_FOUND" {
		t.Errorf("expected code NOT_FOUND, got %v", response["code"])
	}
	if response["trace_id"] == nil {
		t.Error("expected trace_id in response")
	}
}

func TestErrorsRendersDatabaseError(t *testing.T) {
	r := gin.New()
	r.Use(Trace(), Errors())

	r.POST("/orders", func(c *gin.Context) {
		_ = c.Error(&pq.Error{Code: "40001", Message: "could not serialize access"})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(string(httpvocab.POST), "/orders", nil))

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["retryable"] != true {
		t.Errorf("serialization failures should be retryable, got %v", response["retryable"])
	}
}

func TestErrorsUsesLastError(t *testing.T) {
	r := gin.New()
	r.Use(Errors())

	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("first"))
		_ = c.Error(envelope.Forbidden("nope"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(string(httpvocab.GET), "/", nil))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestErrorsKeepsWrittenResponse(t *testing.T) {
	r := gin.New()
	r.Use(Errors())

	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
		c.Writer.WriteHeaderNow()
		_ = c.Error(errors.New("late"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(string(httpvocab.GET), "/", nil))

	if rec.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected no envelope body, got %s", rec.Body.String())
	}
}

func TestErrorsNoError(t *testing.T) {
	r := gin.New()
	r.Use(Errors())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(string(httpvocab.GET), "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
