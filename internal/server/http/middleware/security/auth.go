package security

import (
	"strings"

	"go-shopadmin/internal/logging"
	"go-shopadmin/internal/security/jwt"
	"go-shopadmin/internal/service"
	"go-shopadmin/internal/util/retcode"
	"go-shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and checks the session JTI is still
// registered, so logout revokes tokens before their natural expiry.
func Auth(j *jwt.Manager, auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			response.Error(c, retcode.AUTH_ERROR, "missing token")
			c.Abort()
			return
		}
		token := strings.TrimSpace(header[7:])
		claims, err := j.Parse(token)
		if err != nil {
			response.Error(c, retcode.AUTH_ERROR, "invalid token")
			c.Abort()
			return
		}
		if !auth.SessionActive(c.Request.Context(), claims.JTI) {
			response.Error(c, retcode.TOKEN_TIMEOUT, "token expired")
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("jti", claims.JTI)
		c.Request = c.Request.WithContext(logging.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}
