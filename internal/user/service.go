package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/apperror"
	"github.com/muraja-app/muraja-backend/internal/auth"
	"github.com/muraja-app/muraja-backend/internal/config"
	"github.com/muraja-app/muraja-backend/internal/notification"
	"github.com/muraja-app/muraja-backend/internal/subject"
	util "github.com/muraja-app/muraja-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
	RequestOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone, code string) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*UserResponse, error)
	CompleteProfile(ctx context.Context, userID, name string) (*UserResponse, error)

	ListUsers(ctx context.Context, limit, offset int) ([]UserResponse, error)
	SetRole(ctx context.Context, id, role string) (*UserResponse, error)
	SetActive(ctx context.Context, id string, active bool) (*UserResponse, error)
}

type userService struct {
	repo     UserRepository
	otp      auth.OTPStore
	sms      notification.SMSSender
	telegram notification.ChatSender
}

func NewService(repo UserRepository, otp auth.OTPStore, sms notification.SMSSender, telegram notification.ChatSender) UserService {
	return &userService{repo: repo, otp: otp, sms: sms, telegram: telegram}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *userService) buildTokens(u *User) (*AuthResponse, error) {
	accessToken, err := auth.GenerateJWT(u.ID.String(), u.Role, auth.AccessTokenTTL())
	if err != nil {
		return nil, err
	}

	refreshTTL := auth.RefreshTokenTTL()
	refreshToken, err := auth.GenerateJWT(u.ID.String(), u.Role, refreshTTL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateRefreshToken(&RefreshToken{
		UserID:    u.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(refreshTTL),
	}); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(u),
	}, nil
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	email := strings.ToLower(strings.TrimSpace(dto.Email))

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("EMAIL_EXISTS", "email already in use")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        &email,
		PasswordHash: string(passwordHash),
		Name:         dto.Name,
		Role:         auth.RoleUser,
		// The free subject is unlocked for every new account.
		UnlockedSubjects: []string{subject.Free().String()},
		FreeAttempts:     datatypes.JSONMap{},
		IsActive:         true,
	}
	if dto.Phone != "" {
		phone := util.NormalizePhoneNumber(dto.Phone)
		u.Phone = &phone
	}

	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.Infof("Registered user %s", u.ID)
	return s.buildTokens(u)
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	email := strings.ToLower(strings.TrimSpace(dto.Email))

	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.Unauthorized("INVALID_CREDENTIALS", "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		log.Warnf("Failed login attempt for %s", email)
		return nil, apperror.Unauthorized("INVALID_CREDENTIALS", "invalid credentials")
	}
	if !u.IsActive {
		return nil, apperror.Forbidden("ACCOUNT_DISABLED", "account is disabled")
	}

	return s.buildTokens(u)
}

func (s *userService) RequestOTP(ctx context.Context, phone string) (string, error) {
	log := config.WithContext(ctx)

	normalized := util.NormalizePhoneNumber(phone)
	if !strings.HasPrefix(normalized, "9647") || len(normalized) != 13 {
		return "", apperror.BadRequest("INVALID_PHONE", "invalid Iraqi phone number")
	}

	code := auth.GenerateOTP()
	if err := s.otp.Save(normalized, code); err != nil {
		log.WithError(err).Error("Failed to store OTP")
		return "", err
	}

	// Users who linked the Telegram bot get the code there; everyone else
	// gets an SMS. A Telegram failure falls back to SMS.
	if s.telegram != nil {
		if u, err := s.repo.FindByPhoneVariants(util.PhoneVariants(normalized)); err == nil &&
			u != nil && u.TelegramChatID != nil {
			if err := s.telegram.SendOTP(ctx, *u.TelegramChatID, code); err == nil {
				return normalized, nil
			}
			log.Warn("Telegram OTP delivery failed, falling back to SMS")
		}
	}

	if err := s.sms.SendOTP(ctx, normalized, code); err != nil {
		log.WithError(err).Error("Failed to deliver OTP")
		return "", apperror.Internal("failed to send verification code")
	}

	return normalized, nil
}

func (s *userService) VerifyOTP(ctx context.Context, phone, code string) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	normalized := util.NormalizePhoneNumber(phone)

	ok, err := s.otp.Verify(normalized, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.BadRequest("INVALID_OTP", "invalid or expired verification code")
	}
	s.otp.Delete(normalized)

	u, err := s.repo.FindByPhoneVariants(util.PhoneVariants(normalized))
	if err != nil {
		return nil, err
	}
	if u == nil {
		// First login from this phone: create the account, profile is
		// completed afterwards.
		u = &User{
			Phone:            &normalized,
			Name:             "New Student",
			Role:             auth.RoleUser,
			UnlockedSubjects: []string{subject.Free().String()},
			FreeAttempts:     datatypes.JSONMap{},
			IsActive:         true,
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create phone user")
			return nil, err
		}
		log.Infof("Created user %s from phone login", u.ID)
	}
	if !u.IsActive {
		return nil, apperror.Forbidden("ACCOUNT_DISABLED", "account is disabled")
	}

	return s.buildTokens(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "refresh token invalid")
	}

	tokenHash := hashToken(refreshToken)
	stored, err := s.repo.FindRefreshToken(tokenHash)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "refresh token invalid")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "refresh token invalid")
	}
	u, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("USER_NOT_FOUND", "user not found")
	}

	// Rotation: the old token is single-use.
	if err := s.repo.DeleteRefreshToken(tokenHash); err != nil {
		log.WithError(err).Error("Failed to rotate refresh token")
		return nil, err
	}

	return s.buildTokens(u)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.RevokeRefreshToken(hashToken(refreshToken))
}

func (s *userService) Profile(ctx context.Context, userID string) (*UserResponse, error) {
	u, err := s.findByIDString(userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) CompleteProfile(ctx context.Context, userID, name string) (*UserResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.BadRequest("INVALID_BODY", "name is required")
	}

	u, err := s.findByIDString(userID)
	if err != nil {
		return nil, err
	}

	u.Name = strings.TrimSpace(name)
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]UserResponse, error) {
	users, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *userService) SetRole(ctx context.Context, id, role string) (*UserResponse, error) {
	u, err := s.findByIDString(id)
	if err != nil {
		return nil, err
	}

	u.Role = role
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	config.WithContext(ctx).Infof("User %s role set to %s", u.ID, role)
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) SetActive(ctx context.Context, id string, active bool) (*UserResponse, error) {
	u, err := s.findByIDString(id)
	if err != nil {
		return nil, err
	}

	u.IsActive = active
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	resp := toUserResponse(u)
	return &resp, nil
}

func (s *userService) findByIDString(id string) (*User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.BadRequest("INVALID_ID", "invalid user id")
	}
	u, err := s.repo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("USER_NOT_FOUND", "user not found")
	}
	return u, nil
}
