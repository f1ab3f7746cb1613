package middleware

import (
	"net/http"
	"strings"

	"clientbook/internal/auth"
	"clientbook/internal/model"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the caller's auth.Identity.
const IdentityKey = "identity"

// TokenParser turns a bearer token into an identity.
type TokenParser interface {
	Parse(raw string) (auth.Identity, error)
}

// AuthMiddleware requires "Authorization: Bearer <jwt>" and stores the
// identity both in the gin context and in the request context.
func AuthMiddleware(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || raw == "" || raw == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Authentication required", ""))
			return
		}

		id, err := p.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid or expired token", ""))
			return
		}

		c.Set(IdentityKey, id)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// Identity returns the caller set by AuthMiddleware.
func Identity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return auth.FromContext(c.Request.Context())
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
