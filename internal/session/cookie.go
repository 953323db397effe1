package session

import (
	"net/http"
	"time"
)

// Cookie describes the browser cookie that carries the session id.
type Cookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Read returns the session id sent by the browser, if any.
func (c Cookie) Read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.Name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// Write sets the cookie to id.
func (c Cookie) Write(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear tells the browser to drop the cookie.
func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
