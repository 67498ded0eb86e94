package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OpsTokenHeader carries the shared operator token.
const OpsTokenHeader = "X-Ops-Token"

// OpsToken returns a middleware that guards operator routes with a shared token.
// An empty token disables the operator routes entirely.
func OpsToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "operator routes are disabled",
				},
			})
			return
		}

		provided := c.GetHeader(OpsTokenHeader)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "X-Ops-Token header required",
				},
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "invalid operator token",
				},
			})
			return
		}

		c.Next()
	}
}
