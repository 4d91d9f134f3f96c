package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"shujaa-quiz-service/internal/domain"
)

// extractJSON returns the substring from the first '{' through the last '}'.
// Well-formed model responses contain exactly one JSON object, possibly
// wrapped in prose or markdown fences, so the greedy match is sufficient.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return "", &domain.ParseError{Msg: "no JSON object found in model response"}
	}
	return text[start : end+1], nil
}

// ParseQuizResponse extracts and decodes a quiz from raw model output.
// wantQuestions > 0 enforces an exact question count; zero accepts whatever
// was returned. Failures are typed: *domain.ParseError when no valid JSON
// can be extracted, *domain.SchemaError when the decoded data does not look
// like a quiz.
func ParseQuizResponse(raw string, wantQuestions int) (domain.QuizData, error) {
	blob, err := extractJSON(raw)
	if err != nil {
		return domain.QuizData{}, err
	}

	var quiz domain.QuizData
	if err := json.Unmarshal([]byte(blob), &quiz); err != nil {
		return domain.QuizData{}, &domain.ParseError{Msg: "model response is not valid JSON", Err: err}
	}

	if len(quiz.Questions) == 0 {
		return domain.QuizData{}, &domain.SchemaError{Msg: "quiz data has no questions"}
	}
	if wantQuestions > 0 && len(quiz.Questions) != wantQuestions {
		return domain.QuizData{}, &domain.SchemaError{
			Msg: fmt.Sprintf("expected %d questions, got %d", wantQuestions, len(quiz.Questions)),
		}
	}
	return quiz, nil
}

// ValidateQuiz checks every question against its type's shape contract:
// multiple choice needs exactly four options and a letter answer A-D,
// true/false needs a boolean answer, and difficulty must be one of the
// known bands. Call after NormalizeQuiz.
func ValidateQuiz(quiz domain.QuizData) error {
	for i, q := range quiz.Questions {
		switch q.Type {
		case domain.TypeMultipleChoice:
			if len(q.Options) != optionCount {
				return &domain.SchemaError{Msg: fmt.Sprintf("question %d: multiple choice needs %d options, got %d", i+1, optionCount, len(q.Options))}
			}
			if q.CorrectAnswer.IsBool || !isOptionLetter(q.CorrectAnswer.Letter) {
				return &domain.SchemaError{Msg: fmt.Sprintf("question %d: multiple choice answer must be a letter A-D", i+1)}
			}
		case domain.TypeTrueFalse:
			if !q.CorrectAnswer.IsBool {
				return &domain.SchemaError{Msg: fmt.Sprintf("question %d: true/false answer must be a boolean", i+1)}
			}
		default:
			return &domain.SchemaError{Msg: fmt.Sprintf("question %d: unknown type %q", i+1, q.Type)}
		}

		switch q.Difficulty {
		case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		default:
			return &domain.SchemaError{Msg: fmt.Sprintf("question %d: unknown difficulty %q", i+1, q.Difficulty)}
		}
	}
	return nil
}

func isOptionLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'D'
}
