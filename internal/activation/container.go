package activation

import (
	"github.com/muraja-app/muraja-backend/internal/user"
	"gorm.io/gorm"
)

type ActivationContainer struct {
	Repo    ActivationRepository
	Service ActivationService
	Handler *Handler
}

func NewActivationContainer(db *gorm.DB, userRepo user.UserRepository) *ActivationContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, userRepo)
	handler := NewHandler(service)

	return &ActivationContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
