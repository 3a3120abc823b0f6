package exam

import (
	"context"

	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/apperror"
	"github.com/muraja-app/muraja-backend/internal/config"
	"github.com/muraja-app/muraja-backend/internal/subject"
	"github.com/muraja-app/muraja-backend/internal/user"
	util "github.com/muraja-app/muraja-backend/internal/utils"
)

// DefaultPassThreshold is the minimum percentage to pass, overridable with
// the PASS_THRESHOLD environment variable.
const DefaultPassThreshold = 60

type ExamService interface {
	GetQuestions(ctx context.Context, userID, subjectRaw string) ([]MaskedQuestion, error)
	SubmitExam(ctx context.Context, userID, subjectRaw string, answers map[string]int) (*ExamResult, error)
	ListResults(ctx context.Context, userID string, limit, offset int) ([]ExamResult, error)

	CreateQuestion(ctx context.Context, dto CreateQuestionDTO) (*ExamQuestion, error)
	GetQuestion(ctx context.Context, id string) (*ExamQuestion, error)
	ListQuestions(ctx context.Context, subjectRaw string, limit, offset int) ([]ExamQuestion, error)
	UpdateQuestion(ctx context.Context, id string, dto UpdateQuestionDTO) (*ExamQuestion, error)
	DeleteQuestion(ctx context.Context, id string) error
}

type examService struct {
	repo          ExamRepository
	userRepo      user.UserRepository
	passThreshold float64
}

func NewService(repo ExamRepository, userRepo user.UserRepository) ExamService {
	return &examService{
		repo:          repo,
		userRepo:      userRepo,
		passThreshold: float64(config.GetEnvInt("PASS_THRESHOLD", DefaultPassThreshold)),
	}
}

func (s *examService) loadUser(userID string) (*user.User, error) {
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

// GetQuestions assembles the adaptive exam set for the user. An empty
// question bank yields an empty set, not an error; the client decides how
// to present it.
func (s *examService) GetQuestions(ctx context.Context, userID, subjectRaw string) ([]MaskedQuestion, error) {
	log := config.WithContext(ctx)

	subj, err := subject.Parse(subjectRaw)
	if err != nil {
		return nil, err
	}

	u, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}
	if err := CheckAccess(subj, u); err != nil {
		return nil, err
	}

	active, err := s.repo.FindActiveQuestions(subj)
	if err != nil {
		log.WithError(err).Error("Failed to load question bank")
		return nil, err
	}
	if len(active) == 0 {
		return []MaskedQuestion{}, nil
	}

	attempts, err := s.repo.FindAttempts(u.ID, subj)
	if err != nil {
		log.WithError(err).Error("Failed to load attempt history")
		return nil, err
	}

	selected := SelectQuestions(active, attempts, PolicyFor(subj))
	log.Infof("Selected %d/%d questions for user %s on %s", len(selected), len(active), u.ID, subj)

	return MaskQuestions(selected), nil
}

// Grade compares submitted answers against the loaded questions. It is pure:
// validation has already pinned questions to exactly the submitted ids.
func Grade(questions []ExamQuestion, answers map[string]int) (correct, wrong int) {
	for _, q := range questions {
		if answers[q.ID.String()] == q.CorrectAnswer {
			correct++
		} else {
			wrong++
		}
	}
	return correct, wrong
}

func (s *examService) SubmitExam(ctx context.Context, userID, subjectRaw string, answers map[string]int) (*ExamResult, error) {
	log := config.WithContext(ctx)

	subj, err := subject.Parse(subjectRaw)
	if err != nil {
		return nil, err
	}

	u, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}
	if err := CheckAccess(subj, u); err != nil {
		return nil, err
	}

	if len(answers) == 0 {
		return nil, apperror.BadRequest("NO_ANSWERS", "no answers submitted")
	}

	ids := make([]uuid.UUID, 0, len(answers))
	for questionID := range answers {
		id, err := uuid.Parse(questionID)
		if err != nil {
			return nil, apperror.BadRequest("INVALID_QUESTIONS", "submitted question ids are invalid")
		}
		ids = append(ids, id)
	}

	questions, err := s.repo.FindQuestionsByIDs(ids, subj)
	if err != nil {
		log.WithError(err).Error("Failed to load submitted questions")
		return nil, err
	}
	// Partial grading is never allowed: every submitted id must resolve to a
	// question of this subject.
	if len(questions) != len(answers) {
		return nil, apperror.BadRequest("INVALID_QUESTIONS", "submitted question ids are invalid")
	}

	correct, wrong := Grade(questions, answers)
	total := len(questions)
	percentage := float64(correct) / float64(total) * 100

	now := util.Now()
	attempt := &ExamAttempt{
		UserID:      u.ID,
		Subject:     subj,
		Answers:     AnswerMap(answers),
		CompletedAt: now,
	}
	result := &ExamResult{
		UserID:         u.ID,
		Subject:        subj,
		Score:          correct,
		TotalQuestions: total,
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		Percentage:     percentage,
		Passed:         percentage >= s.passThreshold,
		CompletedAt:    now,
	}

	if err := s.repo.CreateAttemptAndResult(attempt, result); err != nil {
		log.WithError(err).Error("Failed to persist attempt and result")
		return nil, err
	}

	// Best-effort bookkeeping: a failure here must not fail the graded
	// result that was already committed.
	if subj == subject.Free() && !u.IsPremium && !u.HasUsedFreeAttempt(subj) {
		if err := s.userRepo.MarkFreeAttemptUsed(u.ID, subj.String()); err != nil {
			log.WithError(err).Warn("Failed to mark free attempt as used")
		}
	}

	log.Infof("Graded attempt %s for user %s: %d/%d (%.1f%%)", attempt.ID, u.ID, correct, total, percentage)
	return result, nil
}

func (s *examService) ListResults(ctx context.Context, userID string, limit, offset int) ([]ExamResult, error) {
	u, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	return s.repo.FindResultsByUser(u.ID, limit, offset)
}

func (s *examService) CreateQuestion(ctx context.Context, dto CreateQuestionDTO) (*ExamQuestion, error) {
	subj, err := subject.Parse(dto.Subject)
	if err != nil {
		return nil, err
	}
	if len(dto.Options) < 2 {
		return nil, apperror.BadRequest("INVALID_QUESTION", "a question needs at least two options")
	}
	if dto.CorrectAnswer < 0 || dto.CorrectAnswer >= len(dto.Options) {
		return nil, apperror.BadRequest("INVALID_QUESTION", "correct answer is out of range")
	}
	if dto.QuestionText == "" {
		return nil, apperror.BadRequest("INVALID_QUESTION", "question text is required")
	}

	q := &ExamQuestion{
		Subject:       subj,
		QuestionText:  dto.QuestionText,
		Options:       dto.Options,
		CorrectAnswer: dto.CorrectAnswer,
		Category:      dto.Category,
		Explanation:   dto.Explanation,
		IsActive:      true,
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}

	if err := s.repo.CreateQuestion(q); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to create question")
		return nil, err
	}
	return q, nil
}

func (s *examService) GetQuestion(ctx context.Context, id string) (*ExamQuestion, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.BadRequest("INVALID_ID", "invalid question id")
	}
	q, err := s.repo.FindQuestionByID(parsed)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, apperror.NotFound("QUESTION_NOT_FOUND", "question not found")
	}
	return q, nil
}

func (s *examService) ListQuestions(ctx context.Context, subjectRaw string, limit, offset int) ([]ExamQuestion, error) {
	var subj *subject.Subject
	if subjectRaw != "" {
		parsed, err := subject.Parse(subjectRaw)
		if err != nil {
			return nil, err
		}
		subj = &parsed
	}

	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}

	return s.repo.ListQuestions(subj, limit, offset)
}

func (s *examService) UpdateQuestion(ctx context.Context, id string, dto UpdateQuestionDTO) (*ExamQuestion, error) {
	q, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.QuestionText != nil {
		q.QuestionText = *dto.QuestionText
	}
	if dto.Options != nil {
		q.Options = dto.Options
	}
	if dto.CorrectAnswer != nil {
		q.CorrectAnswer = *dto.CorrectAnswer
	}
	if dto.Category != nil {
		q.Category = *dto.Category
	}
	if dto.Explanation != nil {
		q.Explanation = dto.Explanation
	}
	if dto.IsActive != nil {
		q.IsActive = *dto.IsActive
	}

	if len(q.Options) < 2 {
		return nil, apperror.BadRequest("INVALID_QUESTION", "a question needs at least two options")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return nil, apperror.BadRequest("INVALID_QUESTION", "correct answer is out of range")
	}

	if err := s.repo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *examService) DeleteQuestion(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return apperror.BadRequest("INVALID_ID", "invalid question id")
	}
	return s.repo.DeleteQuestion(parsed)
}
