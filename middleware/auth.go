package middleware

import (
	"net/http"
	"strings"

	"Storefront/pkg/context"
	"Storefront/pkg/jwt"
	"Storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Auth 必须携带有效的 access token；roles 非空时还要求角色匹配
func Auth(secret []byte, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "missing or malformed Authorization header")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			response.Abort(c, http.StatusForbidden, "permission denied")
			return
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth 有 token 时解析出用户，没有时按游客处理；token 无效直接拒绝
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c)
		if !ok {
			c.Next()
			return
		}
		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxRole, claims.Role)
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
