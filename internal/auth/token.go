package auth

import (
	"net/http"
	"strings"
	"time"
)

const AccessTokenCookie = "access_token"

func ExtractAccessToken(r *http.Request) string {
	// Cookie first, the web client stores the token there.
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// AccessTokenCookieFor builds the cookie handed out on login.
func AccessTokenCookieFor(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
