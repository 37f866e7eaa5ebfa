package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Sessions reads and issues the anonymous session cookie that keys search history
type Sessions struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// ID returns the session id from the request cookie, or ""
func (s Sessions) ID(c *gin.Context) string {
	id, err := c.Cookie(s.CookieName)
	if err != nil {
		return ""
	}
	return id
}

// Ensure returns the request's session id, generating a new one if absent.
// The bool reports whether the id is new.
func (s Sessions) Ensure(c *gin.Context) (string, bool) {
	if id := s.ID(c); id != "" {
		return id, false
	}
	return uuid.NewString(), true
}

// Set writes the session cookie
func (s Sessions) Set(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, id, int(s.MaxAge.Seconds()), "/", "", s.Secure, true)
}
