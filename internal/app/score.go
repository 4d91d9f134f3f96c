package app

import (
	"strings"

	"shujaa-quiz-service/internal/domain"
)

// optionCount is the number of options a multiple-choice question carries.
const optionCount = 4

// truthy holds the accepted string synonyms for boolean true; everything
// else, including the false synonyms, normalizes to false.
var truthy = map[string]bool{"true": true, "t": true, "yes": true, "y": true, "1": true}

// NormalizeAnswer resolves a question's stored correct answer into its
// canonical form: an uppercase letter A-D for multiple choice, a boolean
// for true/false. True/false strings outside the synonym set default to
// false; a multiple-choice answer given as option text maps to the letter
// of the matching option's position.
func NormalizeAnswer(q domain.QuizQuestion) domain.Answer {
	switch q.Type {
	case domain.TypeTrueFalse:
		if q.CorrectAnswer.IsBool {
			return q.CorrectAnswer
		}
		s := strings.ToLower(strings.TrimSpace(q.CorrectAnswer.Letter))
		return domain.BoolAnswer(truthy[s])
	case domain.TypeMultipleChoice:
		if q.CorrectAnswer.IsBool {
			return domain.LetterAnswer("")
		}
		s := strings.TrimSpace(q.CorrectAnswer.Letter)
		if u := strings.ToUpper(s); isOptionLetter(u) {
			return domain.LetterAnswer(u)
		}
		for i, opt := range q.Options {
			if strings.EqualFold(strings.TrimSpace(opt), s) {
				return domain.LetterAnswer(string(rune('A' + i)))
			}
		}
		return domain.LetterAnswer(s)
	default:
		return q.CorrectAnswer
	}
}

// NormalizeQuiz rewrites every question's correct answer and difficulty
// into canonical form, in place.
func NormalizeQuiz(quiz *domain.QuizData) {
	for i := range quiz.Questions {
		quiz.Questions[i].CorrectAnswer = NormalizeAnswer(quiz.Questions[i])
		quiz.Questions[i].Difficulty = normalizeDifficulty(quiz.Questions[i].Difficulty)
	}
}

// normalizeDifficulty lowercases model-cased bands like "Easy"; values
// outside the enum pass through for validation to reject.
func normalizeDifficulty(d domain.Difficulty) domain.Difficulty {
	return domain.Difficulty(strings.ToLower(strings.TrimSpace(string(d))))
}

// Evaluate compares a submitted answer against the question's normalized
// correct answer. Returns correctness and the points awarded: the
// difficulty's value when correct, zero otherwise. Pure and idempotent.
func Evaluate(q domain.QuizQuestion, submitted domain.Answer) (bool, int) {
	want := NormalizeAnswer(q)
	var correct bool
	if want.IsBool {
		correct = submitted.IsBool && submitted.Bool == want.Bool
	} else {
		correct = !submitted.IsBool && strings.ToUpper(strings.TrimSpace(submitted.Letter)) == want.Letter
	}
	if !correct {
		return false, 0
	}
	return true, q.Difficulty.Points()
}
