package middleware

import "github.com/gin-gonic/gin"

// userIDKey carries the authenticated user's id. AuthMiddleware stores it in
// the standard request context so it survives handoff out of gin.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user id resolved by
// AuthMiddleware, and false when the request never passed through it.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
