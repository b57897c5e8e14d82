package handlers

import (
	"net/http"
	"time"
)

// TokenCookieName cookie с JWT для браузерных клиентов
const TokenCookieName = "token"

// SetTokenCookie кладет токен в HttpOnly cookie
func SetTokenCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
