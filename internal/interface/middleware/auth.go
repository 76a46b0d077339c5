package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal-api/pkg/helpers"
	"jobportal-api/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth validates the bearer token and requires the given role claim. Absent,
// malformed, expired, and badly signed tokens are all rejected with the same
// 401 so callers cannot distinguish why. A valid token with the wrong role is
// also 401 here; use AdminOnly for the 403 variant.
func Auth(jwt *helpers.JWTManager, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "no token provided, authorization denied", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil || claims.Role != role {
			response.Error[any](c, http.StatusUnauthorized, "invalid token, authorization denied", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// AdminOnly accepts any valid token but rejects non-admin roles with 403,
// distinct from the 401 an unauthenticated caller gets.
func AdminOnly(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "no token provided, authorization denied", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid token, authorization denied", nil)
			c.Abort()
			return
		}
		if claims.Role != "admin" {
			response.Error[any](c, http.StatusForbidden, "access denied, admin only", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}
