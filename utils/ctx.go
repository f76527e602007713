package utils

import "github.com/gin-gonic/gin"

const (
	CtxUserID     = "userId"
	CtxRole       = "role"
	CtxSessionKey = "sessionKey"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(CtxUserID)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get(CtxRole); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func SessionKey(c *gin.Context) string { return c.GetString(CtxSessionKey) }
