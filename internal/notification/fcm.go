package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/muraja-app/muraja-backend/internal/config"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

// Topic every client app subscribes to on first launch.
const broadcastTopic = "all_users"

type fcmClient struct {
	serverKey string
	sendURL   string
	client    *http.Client
}

func NewFCMClient(serverKey string) PushSender {
	return &fcmClient{
		serverKey: serverKey,
		sendURL:   config.GetEnv("FCM_SEND_URL", fcmSendURL),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *fcmClient) SendToTopic(ctx context.Context, title, body string) (string, error) {
	log := config.WithContext(ctx)

	payload := map[string]interface{}{
		"to": "/topics/" + broadcastTopic,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendURL, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "key="+c.serverKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to reach FCM")
		return "", fmt.Errorf("fcm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("fcm responded with status %d", resp.StatusCode)
	}

	var result struct {
		MessageID int64 `json:"message_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", result.MessageID), nil
}
