package user

import (
	"github.com/muraja-app/muraja-backend/internal/auth"
	"github.com/muraja-app/muraja-backend/internal/notification"
	"gorm.io/gorm"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, otp auth.OTPStore, sms notification.SMSSender, telegram notification.ChatSender) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, otp, sms, telegram)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
