package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-Id"
	sessionCtxKey = "session_id"
)

// Session attaches a browser-session identifier to the request. A client
// without one gets a fresh uuid echoed back in the response header; the
// storefront keeps sending it for the life of the tab. Cart snapshots,
// gate flags, and funnel payloads are all keyed by it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(SessionHeader)
		if sid == "" {
			sid = uuid.NewString()
		}
		c.Header(SessionHeader, sid)
		c.Set(sessionCtxKey, sid)
		c.Next()
	}
}

// SessionID returns the session attached by Session().
func SessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
