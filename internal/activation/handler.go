package activation

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
	service ActivationService
}

func NewHandler(service ActivationService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	status, err := h.service.Status(r.Context(), claims.UserID)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, status)
}

func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	var dto RedeemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	status, err := h.service.Redeem(r.Context(), claims.UserID, dto.Code)
	if err != nil {
		log.WithError(err).Warn("Activation code rejected")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, status)
}

func (h *Handler) GenerateCodes(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	var dto GenerateCodeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	codes, err := h.service.GenerateCodes(r.Context(), claims.UserID, dto)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSONMeta(w, http.StatusCreated, map[string]interface{}{"codes": codes},
		map[string]interface{}{"count": len(codes)})
}

func (h *Handler) ListCodes(w http.ResponseWriter, r *http.Request) {
	q := ListCodesQuery{
		Status:  r.URL.Query().Get("status"),
		Subject: r.URL.Query().Get("subject"),
		Limit:   queryInt(r, "limit", 25),
		Offset:  queryInt(r, "offset", 0),
	}

	codes, err := h.service.ListCodes(r.Context(), q)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSONMeta(w, http.StatusOK, map[string]interface{}{"codes": codes},
		map[string]interface{}{"count": len(codes)})
}

func (h *Handler) GetCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.service.GetCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"code": code})
}

func (h *Handler) RevokeCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.service.RevokeCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"code": code})
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
