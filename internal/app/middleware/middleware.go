package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyplan/go-tripui/internal/session"
)

const sessionIDKey = "session_id"

// SessionMiddleware guarantees every request carries a session id: it reads
// the session cookie or mints a fresh id and sets the cookie on the way out.
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || id == "" {
			id = store.NewID()
			// Lax is enough; everything here is same-site form posts.
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(session.CookieName, id, 0, "/", "", false, true)
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// GetSessionID returns the request's session id. SessionMiddleware must have
// run; an empty id means it did not.
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(sessionIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// SecurityMiddleware adds security headers.
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// CSP allows the Google Maps SDK and its tile/CDN hosts.
		csp := "default-src 'self'; " +
			"script-src 'self' https://maps.googleapis.com; " +
			"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
			"font-src 'self' https://fonts.gstatic.com; " +
			"img-src 'self' data: https:; " +
			"connect-src 'self' https://maps.googleapis.com"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}
