package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"craftlink/utils"
)

// RequesterIDKey is the gin context key carrying the authenticated user's ID.
const RequesterIDKey = "requesterID"

// JWTAuthMiddleware resolves the requesting user from the Authorization
// header. Both customers and professionals authenticate the same way; which
// bookings they may touch is decided by the booking service, not here.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		requesterID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || requesterID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(RequesterIDKey, requesterID)
		c.Next()
	}
}
