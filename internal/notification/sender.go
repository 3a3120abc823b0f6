package notification

import "context"

// SMSSender delivers one-time login codes. Implementations are injected so
// the auth flow never talks to a vendor SDK directly.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// PushSender broadcasts announcements to every subscribed device.
type PushSender interface {
	SendToTopic(ctx context.Context, title, body string) (string, error)
}

// ChatSender delivers one-time login codes to a linked chat account. Used
// before SMS when the user has connected the bot.
type ChatSender interface {
	SendOTP(ctx context.Context, chatID, code string) error
}
