package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/preferences-api/internal/presentation/http/middleware"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) string {
	return middleware.GetUserID(c)
}
