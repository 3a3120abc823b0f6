package exam

import (
	"errors"

	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/subject"
	"gorm.io/gorm"
)

type ExamRepository interface {
	FindActiveQuestions(s subject.Subject) ([]ExamQuestion, error)
	FindQuestionsByIDs(ids []uuid.UUID, s subject.Subject) ([]ExamQuestion, error)
	FindAttempts(userID uuid.UUID, s subject.Subject) ([]ExamAttempt, error)
	CreateAttemptAndResult(attempt *ExamAttempt, result *ExamResult) error
	FindResultsByUser(userID uuid.UUID, limit, offset int) ([]ExamResult, error)

	CreateQuestion(q *ExamQuestion) error
	FindQuestionByID(id uuid.UUID) (*ExamQuestion, error)
	ListQuestions(s *subject.Subject, limit, offset int) ([]ExamQuestion, error)
	UpdateQuestion(q *ExamQuestion) error
	DeleteQuestion(id uuid.UUID) error
}

type examRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) FindActiveQuestions(s subject.Subject) ([]ExamQuestion, error) {
	var questions []ExamQuestion
	if err := r.db.
		Where("subject = ? AND is_active = ?", s, true).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *examRepository) FindQuestionsByIDs(ids []uuid.UUID, s subject.Subject) ([]ExamQuestion, error) {
	var questions []ExamQuestion
	if err := r.db.
		Where("id IN ? AND subject = ?", ids, s).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// FindAttempts returns the full history oldest-first so the classification
// fold is deterministic.
func (r *examRepository) FindAttempts(userID uuid.UUID, s subject.Subject) ([]ExamAttempt, error) {
	var attempts []ExamAttempt
	if err := r.db.
		Where("user_id = ? AND subject = ?", userID, s).
		Order("completed_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// CreateAttemptAndResult persists both rows in one transaction: there is
// never a result without its attempt.
func (r *examRepository) CreateAttemptAndResult(attempt *ExamAttempt, result *ExamResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		result.AttemptID = attempt.ID
		return tx.Create(result).Error
	})
}

func (r *examRepository) FindResultsByUser(userID uuid.UUID, limit, offset int) ([]ExamResult, error) {
	var results []ExamResult
	if err := r.db.
		Preload("Attempt").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examRepository) CreateQuestion(q *ExamQuestion) error {
	return r.db.Create(q).Error
}

func (r *examRepository) FindQuestionByID(id uuid.UUID) (*ExamQuestion, error) {
	var q ExamQuestion
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *examRepository) ListQuestions(s *subject.Subject, limit, offset int) ([]ExamQuestion, error) {
	query := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if s != nil {
		query = query.Where("subject = ?", *s)
	}

	var questions []ExamQuestion
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *examRepository) UpdateQuestion(q *ExamQuestion) error {
	return r.db.Save(q).Error
}

func (r *examRepository) DeleteQuestion(id uuid.UUID) error {
	return r.db.Delete(&ExamQuestion{}, "id = ?", id).Error
}
