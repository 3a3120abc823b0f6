package user

import (
	"github.com/go-chi/chi/v5"
	"github.com/muraja-app/muraja-backend/internal/auth"
)

// AuthRoutes is mounted at /auth without the auth middleware; the endpoints
// that need a user attach it themselves.
func AuthRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/login-phone", h.LoginWithPhone)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Get("/me", h.Me)
		r.Post("/complete-profile", h.CompleteProfile)
	})

	return r
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.Me)
	return r
}

// AdminRoutes is mounted under /admin behind the ADMIN role gate.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListUsers)
	r.Patch("/{id}/promote", h.PromoteUser)
	r.Patch("/{id}/demote", h.DemoteUser)
	r.Patch("/{id}/activate", h.ActivateUser)
	r.Patch("/{id}/deactivate", h.DeactivateUser)

	return r
}
