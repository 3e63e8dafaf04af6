package handler

import (
	"net/http"
	"net/url"
)

const (
	sessionCookieName = "hrms_session"
	flashCookieName   = "hrms_flash"
)

type cookieConfig struct {
	secure bool
}

// setSession stores the session token in a browser-session cookie (no
// MaxAge), so it lasts until the browser is closed or the user logs out.
func (c cookieConfig) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c cookieConfig) clearSession(w http.ResponseWriter) {
	c.clear(w, sessionCookieName)
}

// setFlash queues a one-time message for the next page that reads it.
func (c cookieConfig) setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the queued message, if any, and clears it.
func (c cookieConfig) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	c.clear(w, flashCookieName)
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}

func (c cookieConfig) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
