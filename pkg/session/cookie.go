package session

import (
	"net/http"
	"strings"
	"time"
)

// Cookie describes how the session cookie is written and read.
type Cookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Write sets the session cookie: HttpOnly, SameSite=Lax, path /.
func (c Cookie) Write(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately.
func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token extracts the session token from the cookie, falling back to an
// Authorization: Bearer header for clients without a cookie jar.
func (c Cookie) Token(r *http.Request) string {
	if cookie, err := r.Cookie(c.Name); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
