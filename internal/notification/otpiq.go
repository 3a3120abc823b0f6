package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muraja-app/muraja-backend/internal/config"
)

const otpiqBaseURL = "https://api.otpiq.com"

type otpiqClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOTPIQClient builds the SMS client for the OTPIQ gateway.
func NewOTPIQClient(apiKey string) SMSSender {
	return &otpiqClient{
		apiKey:  apiKey,
		baseURL: config.GetEnv("OTPIQ_BASE_URL", otpiqBaseURL),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *otpiqClient) SendOTP(ctx context.Context, phone, code string) error {
	log := config.WithContext(ctx)

	payload := map[string]string{
		"sender": "OTPIQ",
		"mobile": phone,
		"content": fmt.Sprintf(
			"كود التحقق الخاص بك هو: %s\nYour verification code is: %s", code, code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sms/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to reach OTPIQ")
		return fmt.Errorf("otpiq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Errorf("OTPIQ rejected OTP delivery: status=%d body=%s", resp.StatusCode, raw)
		return fmt.Errorf("otpiq responded with status %d", resp.StatusCode)
	}

	log.Infof("OTP sent to %s via OTPIQ", phone)
	return nil
}
