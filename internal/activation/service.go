package activation

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/apperror"
	"github.com/muraja-app/muraja-backend/internal/config"
	"github.com/muraja-app/muraja-backend/internal/subject"
	"github.com/muraja-app/muraja-backend/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// codeAlphabet skips 0/O and 1/I so codes survive being read over the phone.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const defaultPremiumDays = 30

type ActivationService interface {
	Status(ctx context.Context, userID string) (*StatusResponse, error)
	Redeem(ctx context.Context, userID, rawCode string) (*StatusResponse, error)

	GenerateCodes(ctx context.Context, adminID string, dto GenerateCodeDTO) ([]ActivationCode, error)
	ListCodes(ctx context.Context, q ListCodesQuery) ([]ActivationCode, error)
	GetCode(ctx context.Context, id string) (*ActivationCode, error)
	RevokeCode(ctx context.Context, id string) (*ActivationCode, error)
}

type activationService struct {
	db       *gorm.DB
	repo     ActivationRepository
	userRepo user.UserRepository
}

func NewService(db *gorm.DB, repo ActivationRepository, userRepo user.UserRepository) ActivationService {
	return &activationService{db: db, repo: repo, userRepo: userRepo}
}

func (s *activationService) loadUser(userID string) (*user.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "invalid user id")
	}
	u, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("USER_NOT_FOUND", "user not found")
	}
	return u, nil
}

func (s *activationService) Status(ctx context.Context, userID string) (*StatusResponse, error) {
	u, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{
		IsPremium:        u.IsPremium,
		UnlockedSubjects: u.UnlockedSubjects,
		PremiumUntil:     u.PremiumUntil,
	}, nil
}

// Redeem applies an activation code to the user. The code row is locked for
// the duration of the transaction so concurrent redemptions of a limited-use
// code cannot overshoot its counter.
func (s *activationService) Redeem(ctx context.Context, userID, rawCode string) (*StatusResponse, error) {
	log := config.WithContext(ctx)

	normalized := strings.ToUpper(strings.TrimSpace(rawCode))
	if normalized == "" {
		return nil, apperror.BadRequest("CODE_REQUIRED", "activation code is required")
	}

	u, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var code ActivationCode
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&code, "code = ?", normalized).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperror.NotFound("CODE_NOT_FOUND", "activation code not found")
			}
			return err
		}

		switch code.Status {
		case StatusRevoked:
			return apperror.BadRequest("CODE_INACTIVE", "activation code is no longer active")
		case StatusUsed:
			return apperror.BadRequest("CODE_USED", "activation code has already been used")
		}
		if code.Uses >= code.MaxUses {
			return apperror.BadRequest("CODE_USED", "activation code has already been used")
		}
		if code.ExpiresAt != nil && time.Now().After(*code.ExpiresAt) {
			return apperror.BadRequest("CODE_EXPIRED", "activation code has expired")
		}

		if code.UnlockAll {
			until := time.Now().AddDate(0, 0, config.GetEnvInt("PREMIUM_DURATION_DAYS", defaultPremiumDays))
			u.IsPremium = true
			u.PremiumUntil = &until
		} else {
			for _, name := range code.Subjects {
				if !contains(u.UnlockedSubjects, name) {
					u.UnlockedSubjects = append(u.UnlockedSubjects, name)
				}
			}
		}
		if err := tx.Save(u).Error; err != nil {
			return err
		}

		code.Uses++
		code.RedeemedByID = &u.ID
		if code.Uses >= code.MaxUses {
			code.Status = StatusUsed
		}
		return tx.Save(&code).Error
	})
	if err != nil {
		return nil, err
	}

	log.Infof("Activation code redeemed by user %s", u.ID)
	return &StatusResponse{
		IsPremium:        u.IsPremium,
		UnlockedSubjects: u.UnlockedSubjects,
		PremiumUntil:     u.PremiumUntil,
	}, nil
}

func (s *activationService) GenerateCodes(ctx context.Context, adminID string, dto GenerateCodeDTO) ([]ActivationCode, error) {
	log := config.WithContext(ctx)

	if !dto.UnlockAll && len(dto.Subjects) == 0 {
		return nil, apperror.BadRequest("INVALID_CODE_SPEC", "a code must unlock at least one subject")
	}
	for _, raw := range dto.Subjects {
		if _, err := subject.Parse(raw); err != nil {
			return nil, err
		}
	}

	count := dto.Count
	if count <= 0 {
		count = 1
	}
	if count > 500 {
		return nil, apperror.BadRequest("INVALID_CODE_SPEC", "at most 500 codes per batch")
	}

	maxUses := dto.MaxUses
	if maxUses <= 0 {
		maxUses = 1
	}

	var expiresAt *time.Time
	if dto.ExpiresInDays > 0 {
		t := time.Now().AddDate(0, 0, dto.ExpiresInDays)
		expiresAt = &t
	}

	var createdBy *uuid.UUID
	if id, err := uuid.Parse(adminID); err == nil {
		createdBy = &id
	}

	subjects := make([]string, 0, len(dto.Subjects))
	for _, raw := range dto.Subjects {
		parsed, _ := subject.Parse(raw)
		subjects = append(subjects, parsed.String())
	}

	codes := make([]ActivationCode, 0, count)
	for i := 0; i < count; i++ {
		value, err := generateCode()
		if err != nil {
			return nil, err
		}
		codes = append(codes, ActivationCode{
			Code:        value,
			Subjects:    subjects,
			UnlockAll:   dto.UnlockAll,
			MaxUses:     maxUses,
			Status:      StatusActive,
			ExpiresAt:   expiresAt,
			CreatedByID: createdBy,
		})
	}

	if err := s.repo.CreateBatch(codes); err != nil {
		log.WithError(err).Error("Failed to create activation codes")
		return nil, err
	}

	log.Infof("Generated %d activation codes", len(codes))
	return codes, nil
}

func (s *activationService) ListCodes(ctx context.Context, q ListCodesQuery) ([]ActivationCode, error) {
	if q.Limit <= 0 {
		q.Limit = 25
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return s.repo.List(q)
}

func (s *activationService) GetCode(ctx context.Context, id string) (*ActivationCode, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.BadRequest("INVALID_ID", "invalid code id")
	}
	code, err := s.repo.FindByID(parsed)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, apperror.NotFound("CODE_NOT_FOUND", "activation code not found")
	}
	return code, nil
}

func (s *activationService) RevokeCode(ctx context.Context, id string) (*ActivationCode, error) {
	code, err := s.GetCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if code.Status == StatusRevoked {
		return code, nil
	}

	code.Status = StatusRevoked
	if err := s.repo.Update(code); err != nil {
		return nil, err
	}
	return code, nil
}

// generateCode builds a XXXX-XXXX-XXXX code from the unambiguous alphabet.
func generateCode() (string, error) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate activation code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
