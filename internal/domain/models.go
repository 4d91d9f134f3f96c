package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// QuestionType determines the answer-input shape of a question.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
)

// Difficulty of a single question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Points returns the value awarded for a correct answer at this difficulty.
// Unknown difficulties award nothing.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 20
	case DifficultyHard:
		return 30
	default:
		return 0
	}
}

// Answer is the correct answer to a question: a letter A-D for multiple
// choice, a boolean for true/false. Generated payloads may carry either
// shape as a string; normalization into the canonical form happens in the
// app layer before a quiz is returned or cached.
type Answer struct {
	Letter string
	Bool   bool
	IsBool bool
}

// LetterAnswer builds a multiple-choice answer.
func LetterAnswer(letter string) Answer { return Answer{Letter: letter} }

// BoolAnswer builds a true/false answer.
func BoolAnswer(v bool) Answer { return Answer{Bool: v, IsBool: true} }

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsBool {
		return json.Marshal(a.Bool)
	}
	return json.Marshal(a.Letter)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = Answer{Bool: b, IsBool: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer{Letter: s}
		return nil
	}
	return fmt.Errorf("correctAnswer must be a string or boolean, got %s", data)
}

// QuizQuestion is a single question within a quiz. ID is the 1-based
// position in presentation order.
type QuizQuestion struct {
	ID              int          `json:"id"`
	Question        string       `json:"question"`
	Type            QuestionType `json:"type"`
	Options         []string     `json:"options,omitempty"`
	CorrectAnswer   Answer       `json:"correctAnswer"`
	Difficulty      Difficulty   `json:"difficulty"`
	Explanation     string       `json:"explanation"`
	FunnyCommentary string       `json:"funnyCommentary"`
}

// QuizData is an ordered quiz about one hero. A full quiz carries exactly
// ten questions, an initial quiz three.
type QuizData struct {
	HeroName  string         `json:"heroName"`
	HeroBio   string         `json:"heroBio"`
	Questions []QuizQuestion `json:"questions"`
}

// LeaderboardEntry is a persisted record of one completed game session.
type LeaderboardEntry struct {
	ID             int64     `json:"id"`
	PlayerName     string    `json:"playerName"`
	HeroName       string    `json:"heroName"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ScoreSubmission is the payload of a finished session.
type ScoreSubmission struct {
	PlayerName     string
	HeroName       string
	Score          int
	TotalQuestions int
	CorrectAnswers int
}

// SubmitResult reports the outcome of recording a score.
type SubmitResult struct {
	Success bool  `json:"success"`
	Rank    int   `json:"rank"`
	ID      int64 `json:"id"`
}

// LeaderboardFilter selects the time window of a leaderboard query.
type LeaderboardFilter string

const (
	FilterAll   LeaderboardFilter = "all"
	FilterToday LeaderboardFilter = "today"
	FilterWeek  LeaderboardFilter = "week"
)

// ParseFilter maps a query-string value to a filter, defaulting to all.
func ParseFilter(s string) LeaderboardFilter {
	switch LeaderboardFilter(s) {
	case FilterToday:
		return FilterToday
	case FilterWeek:
		return FilterWeek
	default:
		return FilterAll
	}
}

// Cutoff returns the earliest createdAt an entry may have to match the
// filter. The zero time means no cutoff. Today starts at midnight in the
// server's local zone.
func (f LeaderboardFilter) Cutoff(now time.Time) time.Time {
	switch f {
	case FilterToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case FilterWeek:
		return now.Add(-7 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}

// LeaderboardPage is one filtered, truncated view of the leaderboard.
// TotalCount counts every entry matching the filter, ignoring the limit.
type LeaderboardPage struct {
	Entries    []LeaderboardEntry `json:"entries"`
	TotalCount int                `json:"totalCount"`
	Filter     LeaderboardFilter  `json:"filter"`
}
