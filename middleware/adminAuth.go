package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"guildroster/utils"
)

// JWTAuthAdminMiddleware guards destructive routes. The token must be a
// valid admin JWT and its session must still exist in Redis; a logged-out
// token fails even before its expiry.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		tokenID, err := utils.ExtractTokenID(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin token"})
			return
		}
		if _, err := utils.GetAdminSession(utils.GetAuthCacheClient(), tokenID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin session revoked or expired"})
			return
		}

		c.Set("adminTokenID", tokenID)
		c.Set("isAdmin", true)
		c.Next()
	}
}
