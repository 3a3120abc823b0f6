package auth_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/muraja-app/muraja-backend/internal/auth"
)

const testSecret = "a-long-and-secure-secret-key-for-tests"
const testUserID = "user-123"
const testRole = "ADMIN"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Init() should have panicked when JWT_SECRET is empty, but did not.")
			}
		}()

		auth.Init()
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		auth.Init()
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		duration := time.Minute * 5

		tokenStr, err := auth.GenerateJWT(testUserID, testRole, duration)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		claims, err := auth.ValidateJWT(tokenStr)
		if err != nil {
			t.Fatalf("ValidateJWT failed unexpectedly: %v", err)
		}

		if claims.UserID != testUserID {
			t.Errorf("Wrong UserID. Expected: %s, Got: %s", testUserID, claims.UserID)
		}
		if claims.Role != testRole {
			t.Errorf("Wrong Role. Expected: %s, Got: %s", testRole, claims.Role)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		duration := -time.Second * 1

		tokenStr, err := auth.GenerateJWT(testUserID, testRole, duration)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)

		if err == nil {
			t.Fatal("ValidateJWT should have failed with an expired token, but passed.")
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("Wrong error returned for expired token. Expected: %v, Got: %v", jwt.ErrTokenExpired, err)
		}
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": testUserID,
			"role":    testRole,
			"exp":     time.Now().Add(time.Minute).Unix(),
		})
		tokenStr, err := forged.SignedString([]byte("a-different-fake-secret-key"))
		if err != nil {
			t.Fatalf("signing forged token failed: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)

		if err == nil {
			t.Fatal("ValidateJWT should have failed with an invalid signature, but passed.")
		}
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			t.Errorf("Wrong error for invalid signature: %v", err)
		}
	})
}
