package exam

import (
	"github.com/muraja-app/muraja-backend/internal/apperror"
	"github.com/muraja-app/muraja-backend/internal/subject"
	"github.com/muraja-app/muraja-backend/internal/user"
)

// CheckAccess gates both question retrieval and submission: a client must
// never be able to submit answers for a subject it was not granted.
func CheckAccess(s subject.Subject, u *user.User) error {
	if s == subject.Free() {
		return nil
	}
	if u.IsPremium {
		return nil
	}
	if u.HasUnlocked(s) {
		return nil
	}
	return apperror.PaymentRequired("PAYMENT_REQUIRED", "subject requires activation")
}
