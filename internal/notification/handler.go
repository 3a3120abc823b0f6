package notification

import (
	"encoding/json"
	"net/http"

	"github.com/muraja-app/muraja-backend/internal/apperror"
	"github.com/muraja-app/muraja-backend/internal/config"
)

type Handler struct {
	push PushSender
}

func NewHandler(push PushSender) *Handler {
	return &Handler{push: push}
}

func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "invalid request body"))
		return
	}
	if payload.Title == "" || payload.Body == "" {
		config.Error(w, apperror.BadRequest("INVALID_BODY", "title and body are required"))
		return
	}

	messageID, err := h.push.SendToTopic(r.Context(), payload.Title, payload.Body)
	if err != nil {
		log.WithError(err).Error("Failed to send broadcast notification")
		config.Error(w, apperror.Internal("failed to send notification"))
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message":    "notification sent successfully",
		"message_id": messageID,
	})
}
