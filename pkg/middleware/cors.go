package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/apperr"
)

// CORS allows browser requests from the configured origins; an empty list reflects any
// Origin. Preflight requests are answered with 204 without reaching the handlers.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			if len(allowed) == 0 || ok {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
				h.Add("Vary", "Origin")
			} else if c.Request.Method == http.MethodOptions {
				_ = c.Error(apperr.Forbidden("Not allowed by CORS"))
				c.Abort()
				return
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
