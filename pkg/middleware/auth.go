package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/models"
)

// IdentityKey is the gin context key holding the authenticated models.Identity.
const IdentityKey = "identity"

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (*models.Identity, error)
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier
// and attaches the resolved identity (id, email, name) to the request context.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			_ = c.Error(apperr.Unauthorized("Auth token missing"))
			c.Abort()
			return
		}

		id, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			e := apperr.Unauthorized("Invalid token")
			e.Err = err
			_ = c.Error(e)
			c.Abort()
			return
		}

		c.Set(IdentityKey, models.Identity{ID: id.ID, Email: id.Email, Name: id.Name})
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}
