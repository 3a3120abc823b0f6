package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/muraja-app/muraja-backend/internal/config"
)

// AuthRateLimiter throttles the unauthenticated auth endpoints per client IP.
// OTP sending in particular must not be free to spam.
func AuthRateLimiter() func(http.Handler) http.Handler {
	limit := config.GetEnvInt("AUTH_RATE_LIMIT", 10)
	return httprate.LimitByIP(limit, time.Minute)
}
