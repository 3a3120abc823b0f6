package exam

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/muraja-app/muraja-backend/internal/subject"
)

func makeQuestion(s subject.Subject, category string, correct int) ExamQuestion {
	return ExamQuestion{
		ID:            uuid.New(),
		Subject:       s,
		QuestionText:  "question",
		Options:       OptionList{"a", "b", "c", "d"},
		CorrectAnswer: correct,
		Category:      category,
		IsActive:      true,
	}
}

func makeBank(s subject.Subject, category string, n int) []ExamQuestion {
	bank := make([]ExamQuestion, 0, n)
	for i := 0; i < n; i++ {
		bank = append(bank, makeQuestion(s, category, 0))
	}
	return bank
}

func attemptWith(answers map[string]int) ExamAttempt {
	return ExamAttempt{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Subject: subject.ARABIC,
		Answers: answers,
	}
}

func idSet(questions []ExamQuestion) map[string]struct{} {
	set := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		set[q.ID.String()] = struct{}{}
	}
	return set
}

func TestClassifyHistory(t *testing.T) {
	bank := makeBank(subject.ARABIC, "", 3)
	q0, q1, q2 := bank[0], bank[1], bank[2]

	t.Run("EverCorrectWins", func(t *testing.T) {
		// q0 missed first, then answered right; q1 only missed; q2 untouched.
		attempts := []ExamAttempt{
			attemptWith(map[string]int{q0.ID.String(): 1, q1.ID.String(): 2}),
			attemptWith(map[string]int{q0.ID.String(): 0}),
		}

		correct, wrong := ClassifyHistory(bank, attempts)

		if _, ok := correct[q0.ID.String()]; !ok {
			t.Errorf("expected %s to be classified correct", q0.ID)
		}
		if _, ok := wrong[q1.ID.String()]; !ok {
			t.Errorf("expected %s to be classified wrong", q1.ID)
		}
		if _, ok := correct[q2.ID.String()]; ok {
			t.Errorf("unseen question %s classified correct", q2.ID)
		}
		if _, ok := wrong[q2.ID.String()]; ok {
			t.Errorf("unseen question %s classified wrong", q2.ID)
		}
	})

	t.Run("SetsAreDisjoint", func(t *testing.T) {
		// Same question right and wrong in the same attempt history.
		attempts := []ExamAttempt{
			attemptWith(map[string]int{q0.ID.String(): 0}),
			attemptWith(map[string]int{q0.ID.String(): 3}),
		}

		correct, wrong := ClassifyHistory(bank, attempts)

		for id := range correct {
			if _, ok := wrong[id]; ok {
				t.Fatalf("id %s present in both sets", id)
			}
		}
		if _, ok := correct[q0.ID.String()]; !ok {
			t.Errorf("expected ever-correct %s in the correct set", q0.ID)
		}
	})

	t.Run("IgnoresRetiredQuestions", func(t *testing.T) {
		retired := uuid.NewString()
		attempts := []ExamAttempt{
			attemptWith(map[string]int{retired: 0}),
		}

		correct, wrong := ClassifyHistory(bank, attempts)

		if len(correct) != 0 || len(wrong) != 0 {
			t.Fatalf("retired id leaked into classification: correct=%d wrong=%d", len(correct), len(wrong))
		}
	})
}

func TestSelectQuestions(t *testing.T) {
	t.Run("FirstExamFromLargeBank", func(t *testing.T) {
		bank := makeBank(subject.ARABIC, "", 30)

		selected := SelectQuestions(bank, nil, SelectionPolicy{})

		if len(selected) != TargetCount {
			t.Fatalf("expected %d questions, got %d", TargetCount, len(selected))
		}
		seen := idSet(selected)
		if len(seen) != TargetCount {
			t.Fatalf("expected %d distinct questions, got %d", TargetCount, len(seen))
		}
	})

	t.Run("SmallBankReturnsEverything", func(t *testing.T) {
		bank := makeBank(subject.ARABIC, "", 10)

		selected := SelectQuestions(bank, nil, SelectionPolicy{})

		if len(selected) != 10 {
			t.Fatalf("expected all 10 questions, got %d", len(selected))
		}
	})

	t.Run("EmptyBank", func(t *testing.T) {
		selected := SelectQuestions(nil, nil, SelectionPolicy{})
		if len(selected) != 0 {
			t.Fatalf("expected empty set, got %d", len(selected))
		}
	})

	t.Run("WrongQuestionsAlwaysIncluded", func(t *testing.T) {
		bank := makeBank(subject.ARABIC, "", 40)

		// Miss the first 10 questions in a past attempt.
		missed := map[string]int{}
		for _, q := range bank[:10] {
			missed[q.ID.String()] = q.CorrectAnswer + 1
		}
		attempts := []ExamAttempt{attemptWith(missed)}

		selected := SelectQuestions(bank, attempts, SelectionPolicy{})

		if len(selected) != TargetCount {
			t.Fatalf("expected %d questions, got %d", TargetCount, len(selected))
		}
		seen := idSet(selected)
		for id := range missed {
			if _, ok := seen[id]; !ok {
				t.Errorf("previously-missed question %s was not reselected", id)
			}
		}
	})

	t.Run("CorrectOnlyWhenNothingElseLeft", func(t *testing.T) {
		bank := makeBank(subject.ARABIC, "", 30)

		// Answer the first 28 correctly; 2 remain unseen.
		answered := map[string]int{}
		for _, q := range bank[:28] {
			answered[q.ID.String()] = q.CorrectAnswer
		}
		attempts := []ExamAttempt{attemptWith(answered)}

		selected := SelectQuestions(bank, attempts, SelectionPolicy{})

		if len(selected) != TargetCount {
			t.Fatalf("expected %d questions, got %d", TargetCount, len(selected))
		}
		seen := idSet(selected)
		for _, q := range bank[28:] {
			if _, ok := seen[q.ID.String()]; !ok {
				t.Errorf("unseen question %s should beat previously-correct ones", q.ID)
			}
		}
	})

	t.Run("EnglishCategoryQuotas", func(t *testing.T) {
		var bank []ExamQuestion
		bank = append(bank, makeBank(subject.ENGLISH, CategoryGrammar, 20)...)
		bank = append(bank, makeBank(subject.ENGLISH, CategoryFunctions, 20)...)
		bank = append(bank, makeBank(subject.ENGLISH, CategoryReading, 20)...)

		selected := SelectQuestions(bank, nil, PolicyFor(subject.ENGLISH))

		if len(selected) != TargetCount {
			t.Fatalf("expected %d questions, got %d", TargetCount, len(selected))
		}

		counts := map[string]int{}
		for _, q := range selected {
			counts[q.Category]++
		}
		want := map[string]int{CategoryGrammar: 11, CategoryFunctions: 8, CategoryReading: 6}
		for category, quota := range want {
			if counts[category] != quota {
				t.Errorf("category %s: expected %d questions, got %d", category, quota, counts[category])
			}
		}
	})

	t.Run("QuotaShortfallIsNotBackfilled", func(t *testing.T) {
		// Only 3 reading questions exist; the other categories must not
		// absorb the reading quota.
		var bank []ExamQuestion
		bank = append(bank, makeBank(subject.ENGLISH, CategoryGrammar, 20)...)
		bank = append(bank, makeBank(subject.ENGLISH, CategoryFunctions, 20)...)
		bank = append(bank, makeBank(subject.ENGLISH, CategoryReading, 3)...)

		selected := SelectQuestions(bank, nil, PolicyFor(subject.ENGLISH))

		counts := map[string]int{}
		for _, q := range selected {
			counts[q.Category]++
		}
		if counts[CategoryGrammar] != 11 || counts[CategoryFunctions] != 8 || counts[CategoryReading] != 3 {
			t.Fatalf("unexpected category distribution: %v", counts)
		}
	})
}

func TestMaskQuestions(t *testing.T) {
	q := makeQuestion(subject.ARABIC, "", 2)
	explanation := "because"
	q.Explanation = &explanation

	payload, err := json.Marshal(MaskQuestions([]ExamQuestion{q}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := string(payload)
	if strings.Contains(body, "correct_answer") {
		t.Errorf("masked payload leaks the correct answer: %s", body)
	}
	if strings.Contains(body, "explanation") || strings.Contains(body, explanation) {
		t.Errorf("masked payload leaks the explanation: %s", body)
	}
}
