// internal/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionContextKey = "session_id"
)

// Session identifies the browser session owning the cart. Clients send the id
// back on every request; a missing or malformed id starts a new session.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}

		c.Set(SessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}
