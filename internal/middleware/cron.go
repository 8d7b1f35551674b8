package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
)

// CronAuth guards scheduler endpoints with a shared bearer secret. An empty secret locks them.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if secret == "" || !ok ||
			subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(secret)) != 1 {
			httperr.Unauthorized(c, "invalid cron credentials")
			return
		}
		c.Next()
	}
}
