package observability

import (
	"go-shopadmin/internal/logging"

	"github.com/gin-gonic/gin"
)

// LoggerContext copies the correlation keys from the gin context onto the
// request context, so services logging through Logger.WithContext pick them
// up. Must run after Trace; the user id lands later, when Auth admits the
// request.
func LoggerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if v, ok := c.Get(TraceIDKey); ok {
			if id, ok := v.(string); ok && id != "" {
				ctx = logging.WithTraceID(ctx, id)
			}
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
