package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/apperror"
	"github.com/muraja-app/muraja-backend/internal/auth"
	"github.com/muraja-app/muraja-backend/internal/config"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("CRYPTO_KEY", "0123456789abcdef0123456789abcdef")
	auth.Init()
	config.InitCrypto()
	os.Exit(m.Run())
}

type fakeRepo struct {
	users  []*User
	tokens map[string]*RefreshToken
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tokens: map[string]*RefreshToken{}}
}

func (f *fakeRepo) Create(u *User) error {
	u.ID = uuid.New()
	f.users = append(f.users, u)
	return nil
}

func (f *fakeRepo) FindByID(id uuid.UUID) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByPhoneVariants(variants []string) (*User, error) {
	for _, u := range f.users {
		if u.Phone == nil {
			continue
		}
		for _, v := range variants {
			if *u.Phone == v {
				return u, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeRepo) Update(u *User) error                  { return nil }
func (f *fakeRepo) List(limit, offset int) ([]User, error) { return nil, nil }
func (f *fakeRepo) MarkFreeAttemptUsed(id uuid.UUID, subjectName string) error {
	return nil
}

func (f *fakeRepo) CreateRefreshToken(t *RefreshToken) error {
	f.tokens[t.TokenHash] = t
	return nil
}

func (f *fakeRepo) FindRefreshToken(hash string) (*RefreshToken, error) {
	return f.tokens[hash], nil
}

func (f *fakeRepo) DeleteRefreshToken(hash string) error {
	delete(f.tokens, hash)
	return nil
}

func (f *fakeRepo) RevokeRefreshToken(hash string) error {
	if t, ok := f.tokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

type fakeSMS struct {
	phone string
	code  string
	fail  bool
}

func (f *fakeSMS) SendOTP(ctx context.Context, phone, code string) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	f.phone = phone
	f.code = code
	return nil
}

type fakeTelegram struct {
	chatID string
	code   string
	fail   bool
}

func (f *fakeTelegram) SendOTP(ctx context.Context, chatID, code string) error {
	if f.fail {
		return context.DeadlineExceeded
	}
	f.chatID = chatID
	f.code = code
	return nil
}

func newTestService() (UserService, *fakeRepo, *fakeSMS) {
	repo := newFakeRepo()
	sms := &fakeSMS{}
	return NewService(repo, auth.NewMemoryOTPStore(5*time.Minute), sms, nil), repo, sms
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	if !ok {
		t.Fatalf("expected *apperror.AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, _ := newTestService()

		resp, err := svc.Register(ctx, RegisterDTO{
			Name: "Student", Email: "Student@Example.com", Password: "secret123",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Token == "" || resp.RefreshToken == "" {
			t.Fatal("expected both tokens to be issued")
		}
		if resp.User.Email == nil || *resp.User.Email != "student@example.com" {
			t.Errorf("expected lowercased email, got %v", resp.User.Email)
		}
		if len(resp.User.UnlockedSubjects) != 1 || resp.User.UnlockedSubjects[0] != "ARABIC" {
			t.Errorf("expected the free subject unlocked, got %v", resp.User.UnlockedSubjects)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc, _, _ := newTestService()
		dto := RegisterDTO{Name: "Student", Email: "a@b.com", Password: "secret123"}

		if _, err := svc.Register(ctx, dto); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := svc.Register(ctx, dto)
		assertCode(t, err, "EMAIL_EXISTS")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("WrongPassword", func(t *testing.T) {
		svc, _, _ := newTestService()
		if _, err := svc.Register(ctx, RegisterDTO{Name: "S", Email: "a@b.com", Password: "secret123"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := svc.Login(ctx, LoginDTO{Email: "a@b.com", Password: "wrong"})
		assertCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Login(ctx, LoginDTO{Email: "nobody@b.com", Password: "secret123"})
		assertCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("DisabledAccount", func(t *testing.T) {
		svc, repo, _ := newTestService()
		if _, err := svc.Register(ctx, RegisterDTO{Name: "S", Email: "a@b.com", Password: "secret123"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		repo.users[0].IsActive = false

		_, err := svc.Login(ctx, LoginDTO{Email: "a@b.com", Password: "secret123"})
		assertCode(t, err, "ACCOUNT_DISABLED")
	})
}

func TestPhoneLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsNonIraqiNumber", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.RequestOTP(ctx, "12345")
		assertCode(t, err, "INVALID_PHONE")
	})

	t.Run("NormalizesAndDelivers", func(t *testing.T) {
		svc, _, sms := newTestService()

		phone, err := svc.RequestOTP(ctx, "0770 123 4567")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if phone != "9647701234567" {
			t.Errorf("expected normalized number, got %s", phone)
		}
		if sms.phone != phone || len(sms.code) != 6 {
			t.Errorf("expected a 6-digit code sent to %s, got %q to %q", phone, sms.code, sms.phone)
		}
	})

	t.Run("VerifyCreatesAccountOnce", func(t *testing.T) {
		svc, repo, sms := newTestService()

		if _, err := svc.RequestOTP(ctx, "07701234567"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp, err := svc.VerifyOTP(ctx, "07701234567", sms.code)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.User.Name != "New Student" {
			t.Errorf("expected placeholder name, got %q", resp.User.Name)
		}
		if len(repo.users) != 1 {
			t.Fatalf("expected one user, got %d", len(repo.users))
		}

		// The code is single use.
		_, err = svc.VerifyOTP(ctx, "07701234567", sms.code)
		assertCode(t, err, "INVALID_OTP")

		// A second login round finds the same account.
		if _, err := svc.RequestOTP(ctx, "07701234567"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.VerifyOTP(ctx, "07701234567", sms.code); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.users) != 1 {
			t.Fatalf("expected no duplicate account, got %d users", len(repo.users))
		}
	})

	t.Run("PrefersLinkedTelegram", func(t *testing.T) {
		repo := newFakeRepo()
		sms := &fakeSMS{}
		telegram := &fakeTelegram{}
		svc := NewService(repo, auth.NewMemoryOTPStore(5*time.Minute), sms, telegram)

		phone := "9647701234567"
		chatID := "12345"
		repo.users = append(repo.users, &User{
			ID: uuid.New(), Name: "S", Phone: &phone, TelegramChatID: &chatID, IsActive: true,
		})

		if _, err := svc.RequestOTP(ctx, "07701234567"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if telegram.chatID != chatID || len(telegram.code) != 6 {
			t.Errorf("expected the code via Telegram, got %+v", telegram)
		}
		if sms.phone != "" {
			t.Errorf("SMS should not be sent when Telegram delivery succeeds")
		}
	})

	t.Run("FallsBackToSMS", func(t *testing.T) {
		repo := newFakeRepo()
		sms := &fakeSMS{}
		telegram := &fakeTelegram{fail: true}
		svc := NewService(repo, auth.NewMemoryOTPStore(5*time.Minute), sms, telegram)

		phone := "9647701234567"
		chatID := "12345"
		repo.users = append(repo.users, &User{
			ID: uuid.New(), Name: "S", Phone: &phone, TelegramChatID: &chatID, IsActive: true,
		})

		if _, err := svc.RequestOTP(ctx, "07701234567"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sms.phone != phone {
			t.Errorf("expected SMS fallback to %s, got %q", phone, sms.phone)
		}
	})

	t.Run("WrongCode", func(t *testing.T) {
		svc, _, _ := newTestService()

		if _, err := svc.RequestOTP(ctx, "07701234567"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := svc.VerifyOTP(ctx, "07701234567", "000000")
		assertCode(t, err, "INVALID_OTP")
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	registered, err := svc.Register(ctx, RegisterDTO{Name: "S", Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("expected a rotated refresh token")
	}

	// The consumed token must not work a second time.
	_, err = svc.Refresh(ctx, registered.RefreshToken)
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	registered, err := svc.Register(ctx, RegisterDTO{Name: "S", Email: "a@b.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, registered.RefreshToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Refresh(ctx, registered.RefreshToken)
	assertCode(t, err, "UNAUTHORIZED")
}
