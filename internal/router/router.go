package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/muraja-app/muraja-backend/internal/activation"
	"github.com/muraja-app/muraja-backend/internal/auth"
	"github.com/muraja-app/muraja-backend/internal/config"
	"github.com/muraja-app/muraja-backend/internal/exam"
	"github.com/muraja-app/muraja-backend/internal/middlewares"
	"github.com/muraja-app/muraja-backend/internal/notification"
	"github.com/muraja-app/muraja-backend/internal/user"
)

type RouterConfig struct {
	UserHandler         *user.Handler
	ExamHandler         *exam.Handler
	ActivationHandler   *activation.Handler
	NotificationHandler *notification.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Use(middlewares.AuthRateLimiter())
		r.Mount("/", user.AuthRoutes(cfg.UserHandler))
	})

	r.Mount("/exams", exam.Routes(cfg.ExamHandler))
	r.Mount("/activation", activation.Routes(cfg.ActivationHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))

			r.Mount("/users", user.AdminRoutes(cfg.UserHandler))
			r.Mount("/questions", exam.AdminRoutes(cfg.ExamHandler))
			r.Mount("/activation-codes", activation.AdminRoutes(cfg.ActivationHandler))
			r.Post("/notifications/send", cfg.NotificationHandler.SendNotification)
		})
	})

	return r
}
