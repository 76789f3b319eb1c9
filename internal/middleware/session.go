package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/booking-admin/internal/service"
	"github.com/noah-isme/booking-admin/pkg/config"
)

const sessionContextKey = "session_id"

// Session binds the browser session cookie to the request. Unknown or malformed cookies are
// replaced by a fresh random id; the cookie is re-issued on every response to slide its expiry.
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	name := cfg.CookieName
	if name == "" {
		name = "booking_admin_sid"
	}
	return func(c *gin.Context) {
		sid, err := c.Cookie(name)
		if err != nil || !validSessionID(sid) {
			sid = uuid.NewString()
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(cfg.TTL.Seconds()),
			HttpOnly: true,
			Secure:   cfg.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})

		c.Set(sessionContextKey, sid)
		c.Request = c.Request.WithContext(service.WithSessionID(c.Request.Context(), sid))
		c.Next()
	}
}

// SessionID returns the id bound by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

func validSessionID(sid string) bool {
	if sid == "" {
		return false
	}
	_, err := uuid.Parse(sid)
	return err == nil
}
