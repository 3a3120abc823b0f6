package user

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
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}
	if dto.Email == "" || dto.Password == "" || dto.Name == "" {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "name, email and password are required"))
		return
	}

	resp, err := h.service.Register(r.Context(), dto)
	if err != nil {
		log.WithError(err).Warn("Registration failed")
		config.Error(w, err)
		return
	}

	auth.SetRefreshCookie(w, resp.RefreshToken, auth.RefreshTokenTTL())
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), dto)
	if err != nil {
		log.WithError(err).Warn("Login failed")
		config.Error(w, err)
		return
	}

	auth.SetRefreshCookie(w, resp.RefreshToken, auth.RefreshTokenTTL())
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) LoginWithPhone(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto PhoneLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	phone, err := h.service.RequestOTP(r.Context(), dto.Phone)
	if err != nil {
		log.WithError(err).Warn("OTP request failed")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "verification code sent",
		"phone":   phone,
	})
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto VerifyOTPDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), dto.Phone, dto.Code)
	if err != nil {
		log.WithError(err).Warn("OTP verification failed")
		config.Error(w, err)
		return
	}

	auth.SetRefreshCookie(w, resp.RefreshToken, auth.RefreshTokenTTL())
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)

	token := auth.RefreshTokenFromRequest(r, dto.RefreshToken)
	if token == "" {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "refresh token missing"))
		return
	}

	resp, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		config.Error(w, err)
		return
	}

	auth.SetRefreshCookie(w, resp.RefreshToken, auth.RefreshTokenTTL())
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)

	token := auth.RefreshTokenFromRequest(r, dto.RefreshToken)
	if err := h.service.Logout(r.Context(), token); err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Logout failed")
		config.Error(w, err)
		return
	}

	auth.ClearRefreshCookie(w)
	config.JSON(w, http.StatusOK, map[string]bool{"logged_out": true})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	resp, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{"user": resp})
}

func (h *Handler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, apperror.Unauthorized("UNAUTHORIZED", "unauthorized"))
		return
	}

	var dto CompleteProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}

	resp, err := h.service.CompleteProfile(r.Context(), claims.UserID, dto.Name)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{"user": resp})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to list users")
		config.Error(w, err)
		return
	}

	config.JSONMeta(w, http.StatusOK, map[string]interface{}{"users": users},
		map[string]interface{}{"count": len(users)})
}

func (h *Handler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, auth.RoleAdmin)
}

func (h *Handler) DemoteUser(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, auth.RoleUser)
}

func (h *Handler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	resp, err := h.service.SetRole(r.Context(), chi.URLParam(r, "id"), role)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"user": resp})
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	resp, err := h.service.SetActive(r.Context(), chi.URLParam(r, "id"), active)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"user": resp})
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
