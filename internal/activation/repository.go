package activation

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivationRepository interface {
	Create(code *ActivationCode) error
	CreateBatch(codes []ActivationCode) error
	FindByID(id uuid.UUID) (*ActivationCode, error)
	Update(code *ActivationCode) error
	List(q ListCodesQuery) ([]ActivationCode, error)
}

type activationRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ActivationRepository {
	return &activationRepository{db: db}
}

func (r *activationRepository) Create(code *ActivationCode) error {
	return r.db.Create(code).Error
}

func (r *activationRepository) CreateBatch(codes []ActivationCode) error {
	return r.db.Create(&codes).Error
}

func (r *activationRepository) FindByID(id uuid.UUID) (*ActivationCode, error) {
	var code ActivationCode
	if err := r.db.First(&code, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

func (r *activationRepository) Update(code *ActivationCode) error {
	return r.db.Save(code).Error
}

func (r *activationRepository) List(q ListCodesQuery) ([]ActivationCode, error) {
	tx := r.db.Model(&ActivationCode{})

	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Subject != "" {
		tx = tx.Where("? = ANY(subjects)", q.Subject)
	}

	var codes []ActivationCode
	if err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
