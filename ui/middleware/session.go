package middleware

import (
	"log"
	"net/http"
	"time"

	"incosedss/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the visitor's session.ID
const SessionKey = "session_id"

// EnsureSession is middleware that gives every visitor a session cookie
func EnsureSession(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(cookieName); err == nil {
			if id, ok := session.ParseID(raw); ok {
				c.Set(SessionKey, id)
				c.Next()
				return
			}
			log.Printf("[EnsureSession] Ignoring malformed session cookie")
		}

		id := session.NewID()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, string(id), int(ttl.Seconds()), "/", "", false, true)
		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the session assigned by EnsureSession
func SessionID(c *gin.Context) session.ID {
	if v, ok := c.Get(SessionKey); ok {
		if id, ok := v.(session.ID); ok {
			return id
		}
	}
	return ""
}
