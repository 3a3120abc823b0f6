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

const telegramBaseURL = "https://api.telegram.org"

type telegramClient struct {
	botToken string
	baseURL  string
	client   *http.Client
}

// NewTelegramClient builds the bot client used to push login codes to users
// who linked their Telegram account.
func NewTelegramClient(botToken string) ChatSender {
	return &telegramClient{
		botToken: botToken,
		baseURL:  config.GetEnv("TELEGRAM_BASE_URL", telegramBaseURL),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *telegramClient) SendOTP(ctx context.Context, chatID, code string) error {
	payload := map[string]string{
		"chat_id": chatID,
		"text":    fmt.Sprintf("%s is your login code. Do not share it with anyone.", code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram responded with status %d", resp.StatusCode)
	}
	return nil
}
