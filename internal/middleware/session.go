package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionIDHeader is the HTTP header name for the storefront session.
	SessionIDHeader = "X-Session-ID"
	// SessionIDCookie is the cookie fallback for clients that do not
	// persist custom headers.
	SessionIDCookie = "session_id"
	// SessionIDKey is the context key for the session ID.
	SessionIDKey ContextKey = "session_id"
)

// SessionID returns a middleware that ensures each request carries a
// session identifier. The client echoes the X-Session-ID header across
// requests; absent that, the session_id cookie is used, and otherwise a
// new UUID v4 is generated and returned so the client can adopt it.
// Cart, offer, and shipping state all key on this identifier.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionIDCookie); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		c.Set(string(SessionIDKey), sessionID)
		c.Header(SessionIDHeader, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the session ID from the gin context.
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(string(SessionIDKey)); exists {
		if sessionID, ok := id.(string); ok {
			return sessionID
		}
	}
	return ""
}
