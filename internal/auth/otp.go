package auth

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/muraja-app/muraja-backend/internal/config"
)

// OTPStore holds pending one-time codes keyed by normalized phone number.
// It is injected rather than a package global so the lifecycle is explicit;
// a multi-instance deployment swaps in a shared TTL store behind the same
// interface.
type OTPStore interface {
	Save(phone, code string) error
	Verify(phone, code string) (bool, error)
	Delete(phone string)
}

func GenerateOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

type otpEntry struct {
	encryptedCode string
	expiresAt     time.Time
}

type memoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	ttl     time.Duration
}

// NewMemoryOTPStore keeps codes in process memory, AES-GCM encrypted so a
// heap dump never exposes a live code.
func NewMemoryOTPStore(ttl time.Duration) OTPStore {
	return &memoryOTPStore{
		entries: make(map[string]otpEntry),
		ttl:     ttl,
	}
}

func (s *memoryOTPStore) Save(phone, code string) error {
	encrypted, err := config.Encrypt(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[phone] = otpEntry{
		encryptedCode: encrypted,
		expiresAt:     time.Now().Add(s.ttl),
	}
	return nil
}

func (s *memoryOTPStore) Verify(phone, code string) (bool, error) {
	s.mu.Lock()
	entry, ok := s.entries[phone]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.Delete(phone)
		return false, nil
	}

	stored, err := config.Decrypt(entry.encryptedCode)
	if err != nil {
		return false, err
	}
	return stored == code, nil
}

func (s *memoryOTPStore) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
}
