package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/muraja-app/muraja-backend/internal/subject"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `gorm:"type:text" json:"-"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Phone        *string   `gorm:"uniqueIndex" json:"phone,omitempty"`
	Role         string    `gorm:"type:text;not null;default:'USER'" json:"role"`

	IsPremium        bool           `gorm:"not null;default:false" json:"is_premium"`
	PremiumUntil     *time.Time     `json:"premium_until,omitempty"`
	UnlockedSubjects pq.StringArray `gorm:"type:text[]" json:"unlocked_subjects"`

	// FreeAttempts records which free-tier subjects the user has already
	// taken once, keyed by subject name.
	FreeAttempts datatypes.JSONMap `gorm:"type:jsonb" json:"free_attempts,omitempty"`

	TelegramChatID *string   `json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:text;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// HasUnlocked reports whether the subject was explicitly unlocked for the
// user, e.g. through an activation code.
func (u *User) HasUnlocked(s subject.Subject) bool {
	for _, unlocked := range u.UnlockedSubjects {
		if unlocked == s.String() {
			return true
		}
	}
	return false
}

func (u *User) HasUsedFreeAttempt(s subject.Subject) bool {
	if u.FreeAttempts == nil {
		return false
	}
	used, ok := u.FreeAttempts[s.String()].(bool)
	return ok && used
}
