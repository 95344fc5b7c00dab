package middleware

import "github.com/gin-gonic/gin"

const userIDKey = "user_id"

// ExtractUser pulls the user id from the X-User-ID header into the request
// context. There is no authentication here; the id is a plain string key and
// is always passed explicitly below the handler layer.
func ExtractUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// UserID retrieves the header-supplied user id, if any
func UserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	return userID.(string), true
}
