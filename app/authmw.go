package app

import (
	"Gin_boardgame_lending_tool/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

const StaffSessionCookie = "staff_session"

// StaffRequired gates the management screens behind the shared passcode.
// The cookie points at a Redis session created by the unlock endpoint;
// expiry is Redis TTL, nothing else.
func StaffRequired(staffSess *session.StaffSessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(StaffSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "locked"})
			return
		}
		if _, err := staffSess.Get(c.Request.Context(), ck.Value); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "session expired"})
			return
		}
		c.Next()
	}
}
