package middlewares

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"github.com/muraja-app/muraja-backend/internal/config"
)

// CorsMiddleware builds the CORS policy from ALLOWED_ORIGINS, a comma
// separated list. Without it only the local dev frontend is allowed.
func CorsMiddleware(next http.Handler) http.Handler {
	origins := []string{"http://localhost:3000"}
	if raw := config.GetEnv("ALLOWED_ORIGINS", ""); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			origins = append(origins, strings.TrimSpace(origin))
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
