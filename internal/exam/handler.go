package exam

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/muraja-app/muraja-backend/internal/apperror"
	"github.com/muraja-app/muraja-backend/internal/auth"
	"github.com/muraja-app/muraja-backend/internal/config"
)

type Handler struct {
	service ExamService
}

func NewHandler(service ExamService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	questions, err := h.service.GetQuestions(r.Context(), claims.UserID, chi.URLParam(r, "subject"))
	if err != nil {
		log.WithError(err).Warn("Failed to build exam set")
		config.Error(w, err)
		return
	}

	config.JSONMeta(w, http.StatusOK, map[string]interface{}{"questions": questions},
		map[string]interface{}{"count": len(questions)})
}

func (h *Handler) SubmitExam(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	var dto SubmitExamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	result, err := h.service.SubmitExam(r.Context(), claims.UserID, chi.URLParam(r, "subject"), dto.Answers)
	if err != nil {
		log.WithError(err).Warn("Exam submission rejected")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{"result": result})
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	limit := queryInt(r, "limit", 10)
	offset := queryInt(r, "offset", 0)

	results, err := h.service.ListResults(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to list results")
		config.Error(w, err)
		return
	}

	config.JSONMeta(w, http.StatusOK, map[string]interface{}{"results": results},
		map[string]interface{}{"count": len(results)})
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	q, err := h.service.CreateQuestion(r.Context(), dto)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{"question": q})
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.GetQuestion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"question": q})
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 25)
	offset := queryInt(r, "offset", 0)

	questions, err := h.service.ListQuestions(r.Context(), r.URL.Query().Get("subject"), limit, offset)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSONMeta(w, http.StatusOK, map[string]interface{}{"questions": questions},
		map[string]interface{}{"count": len(questions)})
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var dto UpdateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	q, err := h.service.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{"question": q})
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteQuestion(r.Context(), chi.URLParam(r, "id")); err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "question deleted successfully"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
