package notification

import "os"

type Container struct {
	SMS      SMSSender
	Push     PushSender
	Telegram ChatSender
	Handler  *Handler
}

func NewContainer() *Container {
	sms := NewOTPIQClient(os.Getenv("OTPIQ_API_KEY"))
	push := NewFCMClient(os.Getenv("FCM_SERVER_KEY"))

	var telegram ChatSender
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		telegram = NewTelegramClient(token)
	}

	return &Container{
		SMS:      sms,
		Push:     push,
		Telegram: telegram,
		Handler:  NewHandler(push),
	}
}
