package auth_test

import (
	"os"
	"testing"
	"time"

	"github.com/muraja-app/muraja-backend/internal/auth"
	"github.com/muraja-app/muraja-backend/internal/config"
)

func initOTPCrypto(t *testing.T) {
	t.Helper()
	os.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	config.InitCrypto()
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := auth.GenerateOTP()
		if len(code) != 6 {
			t.Fatalf("OTP should have 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("OTP should be numeric, got %q", code)
			}
		}
	}
}

func TestMemoryOTPStore(t *testing.T) {
	initOTPCrypto(t)

	t.Run("SaveAndVerify", func(t *testing.T) {
		store := auth.NewMemoryOTPStore(5 * time.Minute)
		if err := store.Save("9647810011034", "123456"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		ok, err := store.Verify("9647810011034", "123456")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !ok {
			t.Error("Verify should accept the stored code")
		}

		ok, _ = store.Verify("9647810011034", "654321")
		if ok {
			t.Error("Verify should reject a wrong code")
		}
	})

	t.Run("UnknownPhone", func(t *testing.T) {
		store := auth.NewMemoryOTPStore(5 * time.Minute)
		ok, err := store.Verify("9647000000000", "123456")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if ok {
			t.Error("Verify should reject a phone without a pending code")
		}
	})

	t.Run("Expired", func(t *testing.T) {
		store := auth.NewMemoryOTPStore(-time.Second)
		if err := store.Save("9647810011034", "123456"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		ok, _ := store.Verify("9647810011034", "123456")
		if ok {
			t.Error("Verify should reject an expired code")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		store := auth.NewMemoryOTPStore(5 * time.Minute)
		if err := store.Save("9647810011034", "123456"); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		store.Delete("9647810011034")
		ok, _ := store.Verify("9647810011034", "123456")
		if ok {
			t.Error("Verify should reject a deleted code")
		}
	})
}
