package handler

import (
	"net/http"
	"time"

	"taskboard/config"

	"github.com/labstack/echo/v4"
)

// sessionCookies writes and clears the session cookie with one consistent set of attributes.
type sessionCookies struct {
	name     string
	domain   string
	secure   bool
	sameSite http.SameSite
}

func newSessionCookies(cfg *config.CookieConfig) *sessionCookies {
	return &sessionCookies{
		name:     cfg.Name,
		domain:   cfg.Domain,
		secure:   cfg.Secure,
		sameSite: cfg.SameSiteMode(),
	}
}

func (s *sessionCookies) base() *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Path:     "/",
		Domain:   s.domain,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: s.sameSite,
	}
}

func (s *sessionCookies) issue(c echo.Context, token string, expiresAt time.Time, ttl time.Duration) {
	cookie := s.base()
	cookie.Value = token
	cookie.Expires = expiresAt
	cookie.MaxAge = int(ttl.Seconds())
	c.SetCookie(cookie)
}

func (s *sessionCookies) clear(c echo.Context) {
	cookie := s.base()
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	c.SetCookie(cookie)
}
