package httpapi

import (
	"net/http"
	"time"
)

const (
	// refreshCookieName delivers the refresh token. HTTP-only: the token
	// never appears in a response body or becomes readable to scripts.
	refreshCookieName = "refreshToken"

	// loginIndicatorCookieName is a script-readable flag the storefront uses
	// for UI state. It has no security role.
	loginIndicatorCookieName = "li"
)

func (s *Server) setSessionCookies(w http.ResponseWriter, refreshToken string) {
	expires := time.Now().Add(s.config.RefreshTokenValidityDuration)

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     loginIndicatorCookieName,
		Value:    "true",
		Path:     "/",
		Expires:  expires,
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires the delivery cookies. The ledger entry for the
// refresh token is deliberately left intact; see the logout handler.
func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	s.expireCookie(w, refreshCookieName, true)
	s.expireCookie(w, loginIndicatorCookieName, false)
}

func (s *Server) expireCookie(w http.ResponseWriter, name string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: httpOnly,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
