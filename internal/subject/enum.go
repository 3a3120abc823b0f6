package subject

import (
	"strings"

	"github.com/muraja-app/muraja-backend/internal/apperror"
)

type Subject string

const (
	ARABIC   Subject = "ARABIC"
	ENGLISH  Subject = "ENGLISH"
	COMPUTER Subject = "COMPUTER"
)

var AllSubjects = []Subject{
	ARABIC,
	ENGLISH,
	COMPUTER,
}

// Free returns the subject every account can take without activation.
func Free() Subject {
	return ARABIC
}

func (s Subject) IsValid() bool {
	for _, v := range AllSubjects {
		if s == v {
			return true
		}
	}
	return false
}

func (s Subject) String() string {
	return string(s)
}

// Parse normalizes a client-supplied subject name. Matching is
// case-insensitive; anything outside the enum fails with INVALID_SUBJECT.
func Parse(raw string) (Subject, error) {
	s := Subject(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", apperror.BadRequest("INVALID_SUBJECT", "invalid subject")
	}
	return s, nil
}
