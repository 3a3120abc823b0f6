package exam

import (
	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/subject"
)

// MaskedQuestion is the client-facing shape of a question. It has no
// correct-answer or explanation field at all, so a serialization change can
// never leak them.
type MaskedQuestion struct {
	ID           uuid.UUID       `json:"id"`
	Subject      subject.Subject `json:"subject"`
	QuestionText string          `json:"question_text"`
	Options      OptionList      `json:"options"`
	Category     string          `json:"category,omitempty"`
}

func MaskQuestions(questions []ExamQuestion) []MaskedQuestion {
	masked := make([]MaskedQuestion, 0, len(questions))
	for _, q := range questions {
		masked = append(masked, MaskedQuestion{
			ID:           q.ID,
			Subject:      q.Subject,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			Category:     q.Category,
		})
	}
	return masked
}

type SubmitExamDTO struct {
	Answers map[string]int `json:"answers"`
}

type CreateQuestionDTO struct {
	Subject       string   `json:"subject"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Category      string   `json:"category,omitempty"`
	Explanation   *string  `json:"explanation,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

type UpdateQuestionDTO struct {
	QuestionText  *string  `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Category      *string  `json:"category"`
	Explanation   *string  `json:"explanation"`
	IsActive      *bool    `json:"is_active"`
}
