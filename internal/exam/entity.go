package exam

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/subject"
	util "github.com/muraja-app/muraja-backend/internal/utils"
)

// Categories used by the ENGLISH selection quotas.
const (
	CategoryGrammar   = "grammar"
	CategoryFunctions = "functions"
	CategoryReading   = "reading"
)

type ExamQuestion struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Subject       subject.Subject `gorm:"type:text;not null;index" json:"subject"`
	QuestionText  string          `gorm:"type:text;not null" json:"question_text"`
	Options       OptionList      `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer int             `gorm:"not null" json:"correct_answer"`
	Category      string          `gorm:"type:text" json:"category,omitempty"`
	Explanation   *string         `gorm:"type:text" json:"explanation,omitempty"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type ExamAttempt struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject     subject.Subject    `gorm:"type:text;not null;index" json:"subject"`
	Answers     AnswerMap          `gorm:"type:jsonb;not null" json:"answers"`
	CompletedAt util.LocalDateTime `gorm:"type:timestamp;not null" json:"completed_at"`
}

type ExamResult struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AttemptID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"attempt_id"`
	Attempt        *ExamAttempt       `gorm:"foreignKey:AttemptID" json:"attempt,omitempty"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject        subject.Subject    `gorm:"type:text;not null" json:"subject"`
	Score          int                `gorm:"not null" json:"score"`
	TotalQuestions int                `gorm:"not null" json:"total_questions"`
	CorrectAnswers int                `gorm:"not null" json:"correct_answers"`
	WrongAnswers   int                `gorm:"not null" json:"wrong_answers"`
	Percentage     float64            `gorm:"not null" json:"percentage"`
	Passed         bool               `gorm:"not null" json:"passed"`
	CompletedAt    util.LocalDateTime `gorm:"type:timestamp;not null" json:"completed_at"`
}

// OptionList stores the ordered answer options as a jsonb array.
type OptionList []string

func (o OptionList) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OptionList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("cannot scan type %T into OptionList", value)
	}
}

// AnswerMap maps question id to the selected option index, stored as jsonb.
type AnswerMap map[string]int

func (a AnswerMap) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AnswerMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan type %T into AnswerMap", value)
	}
}
