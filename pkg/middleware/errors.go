package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/pkg/logger"
)

// ErrorHandler renders the last error recorded with c.Error as the uniform envelope
// {status, message[, errors][, details]}. details is only included when exposeDetails is set.
// Register it before every other middleware so it observes their errors too.
func ErrorHandler(exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		ae := apperr.From(c.Errors.Last().Err)
		status := ae.Status()
		if status >= 500 {
			logger.Errorf("%s %s -> %d: %v", c.Request.Method, c.Request.URL.Path, status, ae)
		}
		if c.Writer.Written() {
			return
		}

		body := gin.H{"status": status, "message": ae.Message}
		if len(ae.Fields) > 0 {
			body["errors"] = ae.Fields
		}
		if exposeDetails {
			if ae.Err != nil {
				body["details"] = ae.Err.Error()
			}
			if ae.UpstreamStatus != 0 {
				body["upstreamStatus"] = ae.UpstreamStatus
			}
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery turns a panic into an Internal error for ErrorHandler to render.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec interface{}) {
		_ = c.Error(apperr.Internal(fmt.Errorf("panic: %v", rec)))
		c.Abort()
	})
}
