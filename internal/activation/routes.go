package activation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muraja-app/muraja-backend/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/status", h.Status)
	r.Post("/validate", h.Redeem)

	return r
}

// AdminRoutes is mounted under /admin behind the ADMIN role gate.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.GenerateCodes)
	r.Get("/", h.ListCodes)
	r.Get("/{id}", h.GetCode)
	r.Patch("/{id}/revoke", h.RevokeCode)

	return r
}
