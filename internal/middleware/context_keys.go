package middleware

import "github.com/gin-gonic/gin"

// Keys used to store the authenticated session in the Gin and request contexts.
const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
)

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if val, exists := c.Get(string(key)); exists {
		s, ok := val.(string)
		return s, ok && s != ""
	}
	// check in the request context as well
	if s, ok := c.Request.Context().Value(key).(string); ok && s != "" {
		return s, true
	}
	return "", false
}

// GetUserIDFromContext retrieves the authenticated user ID.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetCompanyIDFromContext retrieves the company the session is bound to.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, companyIDKey)
}
