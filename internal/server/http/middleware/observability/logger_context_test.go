package observability

import (
	"net/http/httptest"
	"testing"

	"go-shopadmin/internal/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerContextBridgesTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	lg := &logging.Logger{Logger: zap.New(core)}

	r := gin.New()
	r.Use(Trace(), LoggerContext())
	r.GET("/x", func(c *gin.Context) {
		lg.WithContext(c.Request.Context()).Info("handled")
		c.Status(200)
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Trace-Id", "trace-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["trace_id"]; got != "trace-abc" {
		t.Errorf("trace_id = %v", got)
	}
}

func TestLoggerContextGeneratesIDWhenHeaderMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	lg := &logging.Logger{Logger: zap.New(core)}

	r := gin.New()
	r.Use(Trace(), LoggerContext())
	r.GET("/x", func(c *gin.Context) {
		lg.WithContext(c.Request.Context()).Info("handled")
		c.Status(200)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	got, _ := logs.All()[0].ContextMap()["trace_id"].(string)
	if got == "" {
		t.Fatal("generated trace_id missing from log entry")
	}
	if hdr := w.Header().Get("X-Trace-Id"); hdr != got {
		t.Errorf("logged id %q does not match echoed header %q", got, hdr)
	}
}
