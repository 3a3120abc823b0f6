package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PhoneLoginDTO struct {
	Phone string `json:"phone"`
}

type VerifyOTPDTO struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type CompleteProfileDTO struct {
	Name string `json:"name"`
}

type UserResponse struct {
	ID               uuid.UUID      `json:"id"`
	Email            *string        `json:"email,omitempty"`
	Name             string         `json:"name"`
	Phone            *string        `json:"phone,omitempty"`
	Role             string         `json:"role"`
	IsPremium        bool           `json:"is_premium"`
	PremiumUntil     *time.Time     `json:"premium_until,omitempty"`
	UnlockedSubjects pq.StringArray `json:"unlocked_subjects"`
	IsActive         bool           `json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func toUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		Role:             u.Role,
		IsPremium:        u.IsPremium,
		PremiumUntil:     u.PremiumUntil,
		UnlockedSubjects: u.UnlockedSubjects,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
	}
}
