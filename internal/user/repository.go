package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(u *User) error
	FindByID(id uuid.UUID) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByPhoneVariants(variants []string) (*User, error)
	Update(u *User) error
	List(limit, offset int) ([]User, error)
	MarkFreeAttemptUsed(id uuid.UUID, subjectName string) error

	CreateRefreshToken(t *RefreshToken) error
	FindRefreshToken(tokenHash string) (*RefreshToken, error)
	DeleteRefreshToken(tokenHash string) error
	RevokeRefreshToken(tokenHash string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByPhoneVariants matches any historical storage format of the number.
func (r *userRepository) FindByPhoneVariants(variants []string) (*User, error) {
	var u User
	if err := r.db.First(&u, "phone IN ?", variants).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *User) error {
	return r.db.Save(u).Error
}

func (r *userRepository) List(limit, offset int) ([]User, error) {
	var users []User
	if err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) MarkFreeAttemptUsed(id uuid.UUID, subjectName string) error {
	u, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return gorm.ErrRecordNotFound
	}
	if u.FreeAttempts == nil {
		u.FreeAttempts = datatypes.JSONMap{}
	}
	u.FreeAttempts[subjectName] = true
	return r.db.Model(u).Update("free_attempts", u.FreeAttempts).Error
}

func (r *userRepository) CreateRefreshToken(t *RefreshToken) error {
	return r.db.Create(t).Error
}

func (r *userRepository) FindRefreshToken(tokenHash string) (*RefreshToken, error) {
	var t RefreshToken
	if err := r.db.First(&t, "token_hash = ?", tokenHash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *userRepository) DeleteRefreshToken(tokenHash string) error {
	return r.db.Delete(&RefreshToken{}, "token_hash = ?", tokenHash).Error
}

func (r *userRepository) RevokeRefreshToken(tokenHash string) error {
	return r.db.Model(&RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}
