package exam

import (
	"github.com/muraja-app/muraja-backend/internal/user"
	"gorm.io/gorm"
)

type ExamContainer struct {
	Repo    ExamRepository
	Service ExamService
	Handler *Handler
}

func NewExamContainer(db *gorm.DB, userRepo user.UserRepository) *ExamContainer {
	repo := NewRepository(db)
	service := NewService(repo, userRepo)
	handler := NewHandler(service)

	return &ExamContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
