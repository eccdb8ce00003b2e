package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artdesk/internal/pkg/response"
)

// AdminSecret guards the operator surface with a single shared secret,
// supplied via the X-Admin-Secret header or a ?secret= query parameter.
// Every failure looks the same regardless of the resource requested.
func AdminSecret(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("X-Admin-Secret")
		if supplied == "" {
			supplied = c.Query("secret")
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
			log.Warn("admin access denied",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			response.Denied(c, "admin access denied")
			c.Abort()
			return
		}

		c.Next()
	}
}
