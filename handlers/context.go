package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID returns the authenticated user's id. Requests that came
// through the service API-key bypass carry no user identity; user-scoped
// endpoints reject those instead of panicking on a missing claim.
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{"error": "A user token is required for this endpoint"})
		return 0, false
	}
	userID, ok := value.(int)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "A user token is required for this endpoint"})
		return 0, false
	}
	return userID, true
}
