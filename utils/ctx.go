package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the id stored by the auth middleware.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case float64:
		return uint(id)
	default:
		return 0
	}
}
