package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"go-shopadmin/internal/consumer/audit"
	"go-shopadmin/internal/mq/kafka"

	"github.com/gin-gonic/gin"
)

var skipAuditPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

var sensitiveKeys = []string{"password", "passwd", "pwd", "new_password", "old_password", "code", "token", "authorization"}

// Audit publishes one event per admin mutation to the audit topic through the
// bounded async sender. Request bodies are sanitized before they leave the
// process.
func Audit(s *kafka.AuditSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawPath := c.Request.URL.Path
		if _, ok := skipAuditPaths[rawPath]; ok {
			c.Next()
			return
		}
		var bodyBytes []byte
		if c.Request.Body != nil {
			b, _ := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
			bodyBytes = b
			c.Request.Body = io.NopCloser(bytes.NewBuffer(b))
		}
		c.Next()
		if c.Request.Method == "GET" {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = rawPath
		}
		ev := audit.Event{
			UserID:    c.GetInt64("user_id"),
			Username:  c.GetString("username"),
			Method:    c.Request.Method,
			Path:      path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			Data:      sanitizeJSON(bodyBytes),
			Timestamp: time.Now(),
		}
		b, _ := json.Marshal(ev)
		headers := map[string]string{}
		if traceID, ok := c.Get(TraceIDKey); ok {
			headers[TraceIDKey] = traceID.(string)
		}
		s.Enqueue(kafka.AuditMessage{
			Ctx:     c.Request.Context(),
			Value:   b,
			Headers: headers,
		})
	}
}

func sanitizeJSON(src []byte) string {
	if len(src) == 0 {
		return ""
	}
	if len(src) > 4096 {
		src = src[:4096]
	}
	var m interface{}
	if json.Unmarshal(src, &m) != nil {
		return string(src)
	}
	sanitizeValue(&m)
	b, err := json.Marshal(m)
	if err != nil {
		return string(src)
	}
	return string(b)
}

func sanitizeValue(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, vv := range val {
			lower := strings.ToLower(k)
			for _, s := range sensitiveKeys {
				if lower == s {
					val[k] = "***"
					goto NEXT
				}
			}
			sanitizeValue(&vv)
			val[k] = vv
		NEXT:
		}
	case []interface{}:
		for i, elem := range val {
			sanitizeValue(&elem)
			val[i] = elem
		}
	}
}
