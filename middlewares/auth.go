package middlewares

import (
	"strings"

	"cooldeal/configs"
	"cooldeal/pkg/resp"
	"cooldeal/utils"

	"github.com/gin-gonic/gin"
)

// bearer reads the token from the Authorization header, then from the login cookie.
func bearer(c *gin.Context, cookie string) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie != "" {
		if v, err := c.Cookie(cookie); err == nil {
			return v
		}
	}
	return ""
}

// AuthMiddleware checks the token and, when roles are given, the caller's role.
func AuthMiddleware(cfg *configs.Config, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearer(c, cfg.TokenCookie)
		if tokenStr == "" {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(tokenStr, cfg.JWTSecret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxRole, claims.Role)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.Forbidden(c, "forbidden")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// OptionalAuth sets the caller when a valid token is present and lets anonymous visitors through.
func OptionalAuth(cfg *configs.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := bearer(c, cfg.TokenCookie); tokenStr != "" {
			if claims, err := utils.ParseToken(tokenStr, cfg.JWTSecret); err == nil {
				c.Set(utils.CtxUserID, claims.UserID)
				c.Set(utils.CtxRole, claims.Role)
			}
		}
		c.Next()
	}
}
