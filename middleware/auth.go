package middleware

import (
	"net/http"
	"strings"

	"climaedu/utils"

	"github.com/gin-gonic/gin"
)

// ContextStudentIDKey is the gin context key holding the authenticated student ID.
const ContextStudentIDKey = "studentID"

// JWTAuthStudentMiddleware authenticates the student from a Bearer token and
// stores the student ID in the request context for the booking handlers.
func JWTAuthStudentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		studentID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || studentID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set(ContextStudentIDKey, studentID)
		c.Next()
	}
}
