package exam

import (
	"math/rand"

	"github.com/muraja-app/muraja-backend/internal/subject"
)

// TargetCount is the size of a generated exam set.
const TargetCount = 25

// SelectionPolicy configures how a subject's exam set is assembled. An empty
// CategoryQuotas map means plain priority fill; a non-empty map runs the same
// fill independently per category, capped at that category's quota. The
// quotas must sum to TargetCount.
type SelectionPolicy struct {
	CategoryQuotas map[string]int
}

var selectionPolicies = map[subject.Subject]SelectionPolicy{
	subject.ENGLISH: {
		CategoryQuotas: map[string]int{
			CategoryGrammar:   11,
			CategoryFunctions: 8,
			CategoryReading:   6,
		},
	},
}

func PolicyFor(s subject.Subject) SelectionPolicy {
	return selectionPolicies[s]
}

// ClassifyHistory folds every past attempt, oldest first, into two disjoint
// id sets. A question answered correctly in any attempt counts as correct
// even if it was missed in another; everything else that was ever answered
// wrong stays wrong. Ids that no longer resolve to an active question are
// ignored.
func ClassifyHistory(active []ExamQuestion, attempts []ExamAttempt) (correctIDs, wrongIDs map[string]struct{}) {
	byID := make(map[string]*ExamQuestion, len(active))
	for i := range active {
		byID[active[i].ID.String()] = &active[i]
	}

	correctIDs = make(map[string]struct{})
	wrongIDs = make(map[string]struct{})

	for _, attempt := range attempts {
		for questionID, selectedOption := range attempt.Answers {
			q, ok := byID[questionID]
			if !ok {
				continue
			}
			if selectedOption == q.CorrectAnswer {
				correctIDs[questionID] = struct{}{}
				delete(wrongIDs, questionID)
			} else {
				wrongIDs[questionID] = struct{}{}
			}
		}
	}

	// Ever-correct wins: the sets must be disjoint.
	for id := range correctIDs {
		delete(wrongIDs, id)
	}

	return correctIDs, wrongIDs
}

// SelectQuestions assembles an exam set of at most TargetCount questions
// from the active bank, prioritizing previously-missed questions, then
// unseen ones, then previously-correct ones. The returned order is
// shuffled so it carries no information about the buckets.
func SelectQuestions(active []ExamQuestion, attempts []ExamAttempt, policy SelectionPolicy) []ExamQuestion {
	if len(active) == 0 {
		return []ExamQuestion{}
	}

	correctIDs, wrongIDs := ClassifyHistory(active, attempts)

	var wrongQuestions, newQuestions, correctQuestions []ExamQuestion
	for _, q := range active {
		id := q.ID.String()
		switch {
		case contains(wrongIDs, id):
			wrongQuestions = append(wrongQuestions, q)
		case contains(correctIDs, id):
			correctQuestions = append(correctQuestions, q)
		default:
			newQuestions = append(newQuestions, q)
		}
	}

	var result []ExamQuestion
	if len(policy.CategoryQuotas) > 0 {
		for category, quota := range policy.CategoryQuotas {
			result = append(result, fillByPriority(
				filterCategory(wrongQuestions, category),
				filterCategory(newQuestions, category),
				filterCategory(correctQuestions, category),
				quota,
			)...)
		}
	} else {
		result = fillByPriority(wrongQuestions, newQuestions, correctQuestions, TargetCount)
	}

	shuffle(result)
	if len(result) > TargetCount {
		result = result[:TargetCount]
	}
	return result
}

// fillByPriority takes every wrong question first, then fills the remaining
// slots from new and finally correct questions. Lower-priority buckets are
// the only ones truncated.
func fillByPriority(wrong, unseen, correct []ExamQuestion, target int) []ExamQuestion {
	result := make([]ExamQuestion, 0, target)

	shuffled := shuffledCopy(wrong)
	result = append(result, shuffled...)

	if len(result) < target {
		needed := target - len(result)
		shuffled = shuffledCopy(unseen)
		if len(shuffled) > needed {
			shuffled = shuffled[:needed]
		}
		result = append(result, shuffled...)
	}

	if len(result) < target {
		needed := target - len(result)
		shuffled = shuffledCopy(correct)
		if len(shuffled) > needed {
			shuffled = shuffled[:needed]
		}
		result = append(result, shuffled...)
	}

	if len(result) > target {
		result = result[:target]
	}
	return result
}

func filterCategory(questions []ExamQuestion, category string) []ExamQuestion {
	var filtered []ExamQuestion
	for _, q := range questions {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

func shuffledCopy(questions []ExamQuestion) []ExamQuestion {
	shuffled := make([]ExamQuestion, len(questions))
	copy(shuffled, questions)
	shuffle(shuffled)
	return shuffled
}

func shuffle(questions []ExamQuestion) {
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
