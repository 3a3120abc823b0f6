package container

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/muraja-app/muraja-backend/internal/activation"
	"github.com/muraja-app/muraja-backend/internal/auth"
	"github.com/muraja-app/muraja-backend/internal/config"
	"github.com/muraja-app/muraja-backend/internal/exam"
	"github.com/muraja-app/muraja-backend/internal/notification"
	"github.com/muraja-app/muraja-backend/internal/user"
)

type Container struct {
	UserContainer         *user.UserContainer
	ExamContainer         *exam.ExamContainer
	ActivationContainer   *activation.ActivationContainer
	NotificationContainer *notification.Container
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&user.RefreshToken{},
		&exam.ExamQuestion{},
		&exam.ExamAttempt{},
		&exam.ExamResult{},
		&activation.ActivationCode{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	otpTTL := time.Duration(config.GetEnvInt("OTP_TTL_MINUTES", 5)) * time.Minute
	otpStore := auth.NewMemoryOTPStore(otpTTL)

	notificationContainer := notification.NewContainer()
	userContainer := user.NewUserContainer(config.DB, otpStore, notificationContainer.SMS, notificationContainer.Telegram)
	examContainer := exam.NewExamContainer(config.DB, userContainer.Repo)
	activationContainer := activation.NewActivationContainer(config.DB, userContainer.Repo)

	return &Container{
		UserContainer:         userContainer,
		ExamContainer:         examContainer,
		ActivationContainer:   activationContainer,
		NotificationContainer: notificationContainer,
	}
}
