package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/muraja-app/muraja-backend/internal/config"
)

const RefreshCookieName = "refreshToken"

func cookieDomain() string {
	return os.Getenv("COOKIE_DOMAIN")
}

func cookieSecure() bool {
	return os.Getenv("COOKIE_SECURE") == "true" || os.Getenv("APP_ENV") == "production"
}

// SetRefreshCookie stores the refresh token for browser clients. Mobile
// clients receive it in the response body instead.
func SetRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/auth",
		Domain:   cookieDomain(),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/auth",
		Domain:   cookieDomain(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}

// RefreshTokenFromRequest prefers the body token, falling back to the cookie.
func RefreshTokenFromRequest(r *http.Request, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	if cookie, err := r.Cookie(RefreshCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func RefreshTokenTTL() time.Duration {
	days := config.GetEnvInt("REFRESH_TOKEN_TTL_DAYS", 14)
	return time.Duration(days) * 24 * time.Hour
}

func AccessTokenTTL() time.Duration {
	minutes := config.GetEnvInt("ACCESS_TOKEN_TTL_MINUTES", 15)
	return time.Duration(minutes) * time.Minute
}
