package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

const claimsContextKey = "authClaims"

// JWTAuth authenticates the bearer token and stores the verified claims on
// the gin context and the request context for downstream scope resolution.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsContextKey, claims)
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ClaimsFrom(c).HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the authenticated claims, or zero Claims when the
// request did not pass JWTAuth. Zero Claims resolve to an empty-access
// scope, never to a broader one.
func ClaimsFrom(c *gin.Context) Claims {
	if v, ok := c.Get(claimsContextKey); ok {
		if claims, ok := v.(Claims); ok {
			return claims
		}
	}
	return Claims{}
}
