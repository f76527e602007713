package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page reads ?page= and ?limit=, clamping limit to (0, max].
func Page(c *gin.Context, defLimit, max int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > max {
		limit = defLimit
	}
	return page, limit
}

func ParamUint(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v)
}
