package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS sets the storefront CORS headers on every response and short-circuits
// preflight requests with a 204 before any business logic runs. Preflights
// succeed regardless of path validity.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
