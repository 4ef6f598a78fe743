package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-tycoon/utils"
)

// AuthMiddleware accepts requests carrying "Authorization: Bearer <token>"
// signed with secret, and stores the token's user id under "userID".
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		claims, err := utils.ParseAccessToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Next()
	}
}
