package exam

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muraja-app/muraja-backend/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/results/list", h.ListResults)
	r.Get("/{subject}/questions", h.GetQuestions)
	r.Post("/{subject}/submit", h.SubmitExam)

	return r
}

// AdminRoutes is mounted under /admin behind the ADMIN role gate.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateQuestion)
	r.Get("/", h.ListQuestions)
	r.Get("/{id}", h.GetQuestion)
	r.Patch("/{id}", h.UpdateQuestion)
	r.Delete("/{id}", h.DeleteQuestion)

	return r
}
