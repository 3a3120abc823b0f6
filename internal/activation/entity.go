package activation

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	StatusActive  = "active"
	StatusUsed    = "used"
	StatusRevoked = "revoked"
)

type ActivationCode struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code         string         `gorm:"type:text;uniqueIndex;not null" json:"code"`
	Subjects     pq.StringArray `gorm:"type:text[]" json:"subjects"`
	UnlockAll    bool           `gorm:"not null;default:false" json:"unlock_all"`
	MaxUses      int            `gorm:"not null;default:1" json:"max_uses"`
	Uses         int            `gorm:"not null;default:0" json:"uses"`
	Status       string         `gorm:"type:text;not null;default:'active'" json:"status"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	CreatedByID  *uuid.UUID     `gorm:"type:uuid" json:"created_by_id,omitempty"`
	RedeemedByID *uuid.UUID     `gorm:"type:uuid" json:"redeemed_by_id,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
