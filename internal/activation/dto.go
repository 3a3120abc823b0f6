package activation

import (
	"time"

	"github.com/lib/pq"
)

type RedeemDTO struct {
	Code string `json:"code"`
}

type StatusResponse struct {
	IsPremium        bool           `json:"is_premium"`
	UnlockedSubjects pq.StringArray `json:"unlocked_subjects"`
	PremiumUntil     *time.Time     `json:"premium_until,omitempty"`
}

type GenerateCodeDTO struct {
	Subjects      []string `json:"subjects"`
	UnlockAll     bool     `json:"unlock_all,omitempty"`
	MaxUses       int      `json:"max_uses,omitempty"`
	ExpiresInDays int      `json:"expires_in_days,omitempty"`
	Count         int      `json:"count,omitempty"`
}

type ListCodesQuery struct {
	Status  string
	Subject string
	Limit   int
	Offset  int
}
