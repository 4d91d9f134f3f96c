package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"shujaa-quiz-service/internal/domain"
)

const (
	// DefaultGenerationTimeout bounds one generative API call.
	DefaultGenerationTimeout = 45 * time.Second
	// DefaultLeaderboardLimit caps leaderboard queries with no explicit limit.
	DefaultLeaderboardLimit = 50
	// maxNameLen bounds stored player and hero names.
	maxNameLen = 100
)

// TextGenerator produces free text from a prompt via the generative API.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// QuizCache memoizes generated quizzes by normalized hero name
// (in-memory, Redis, etc). A Get miss is (zero, false, nil).
type QuizCache interface {
	Get(ctx context.Context, key string) (domain.QuizData, bool, error)
	Set(ctx context.Context, key string, quiz domain.QuizData) error
}

// LeaderboardRepository abstracts leaderboard persistence. Insert fills the
// entry's ID and CreatedAt. List returns entries created at or after since
// (zero since means all), ordered by score then recency, plus the total
// count matching the cutoff regardless of limit.
type LeaderboardRepository interface {
	Insert(ctx context.Context, entry *domain.LeaderboardEntry) error
	CountHigherScores(ctx context.Context, score int) (int, error)
	List(ctx context.Context, since time.Time, limit int) ([]domain.LeaderboardEntry, int, error)
}

// QuizService contains the quiz generation and leaderboard use cases.
type QuizService struct {
	generator   TextGenerator
	cache       QuizCache
	leaderboard LeaderboardRepository
	feed        *LeaderboardFeed
	logger      *zap.Logger
	timeout     time.Duration
	clock       func() time.Time
	sf          singleflight.Group
}

func NewQuizService(generator TextGenerator, cache QuizCache, leaderboard LeaderboardRepository, logger *zap.Logger, timeout time.Duration) *QuizService {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &QuizService{
		generator:   generator,
		cache:       cache,
		leaderboard: leaderboard,
		feed:        NewLeaderboardFeed(),
		logger:      logger,
		timeout:     timeout,
		clock:       time.Now,
	}
}

// WithClock is test-only for deterministic leaderboard cutoffs.
func (s *QuizService) WithClock(now func() time.Time) *QuizService {
	s.clock = now
	return s
}

// Feed exposes the leaderboard change feed for transport-layer watchers.
func (s *QuizService) Feed() *LeaderboardFeed { return s.feed }

// GenerateQuiz returns a full ten-question quiz for the hero, serving from
// cache when possible. Upstream failures (network, non-2xx, timeout) are
// masked with the deterministic fallback quiz; parse and schema failures
// propagate so the caller can apply its own last-resort fallback.
func (s *QuizService) GenerateQuiz(ctx context.Context, heroName string) (domain.QuizData, error) {
	heroName = strings.TrimSpace(heroName)
	if heroName == "" {
		return domain.QuizData{}, domain.ErrEmptyHeroName
	}
	key := strings.ToLower(heroName)

	if quiz, ok := s.cached(ctx, key); ok {
		s.logger.Info("serving cached quiz", zap.String("hero", heroName))
		return quiz, nil
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if quiz, ok := s.cached(ctx, key); ok {
			return quiz, nil
		}

		quiz, err := s.generateFromUpstream(ctx, heroName, FullQuizQuestions)
		if err != nil {
			return domain.QuizData{}, err
		}
		if err := s.cache.Set(ctx, key, quiz); err != nil {
			s.logger.Warn("quiz cache write failed", zap.String("hero", heroName), zap.Error(err))
		}
		return quiz, nil
	})
	if err != nil {
		if domain.IsUpstream(err) {
			s.logger.Warn("quiz generation failed upstream, using fallback",
				zap.String("hero", heroName), zap.Error(err))
			return FallbackQuiz(heroName), nil
		}
		return domain.QuizData{}, err
	}
	return result.(domain.QuizData), nil
}

// GenerateInitialQuestions returns the quick three-question batch shown
// while the full quiz loads. Any failure is masked with the first three
// fallback questions.
func (s *QuizService) GenerateInitialQuestions(ctx context.Context, heroName string) (domain.QuizData, error) {
	heroName = strings.TrimSpace(heroName)
	if heroName == "" {
		return domain.QuizData{}, domain.ErrEmptyHeroName
	}

	quiz, err := s.generateFromUpstream(ctx, heroName, InitialQuizQuestions)
	if err != nil {
		s.logger.Warn("initial question generation failed, using fallback",
			zap.String("hero", heroName), zap.Error(err))
		return FallbackInitialQuiz(heroName), nil
	}
	return quiz, nil
}

// generateFromUpstream builds the prompt, calls the generative API under
// the configured timeout, and decodes/normalizes/validates the result.
// count selects the prompt shape; only the full quiz enforces its length.
func (s *QuizService) generateFromUpstream(ctx context.Context, heroName string, count int) (domain.QuizData, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.GenerateContent(ctx, BuildQuizPrompt(heroName, count))
	if err != nil {
		return domain.QuizData{}, &domain.UpstreamError{
			Timeout: errors.Is(err, context.DeadlineExceeded),
			Err:     err,
		}
	}

	wantQuestions := 0
	if count == FullQuizQuestions {
		wantQuestions = FullQuizQuestions
	}
	quiz, err := ParseQuizResponse(text, wantQuestions)
	if err != nil {
		return domain.QuizData{}, err
	}

	NormalizeQuiz(&quiz)
	if err := ValidateQuiz(quiz); err != nil {
		return domain.QuizData{}, err
	}
	if quiz.HeroName == "" {
		quiz.HeroName = heroName
	}
	return quiz, nil
}

func (s *QuizService) cached(ctx context.Context, key string) (domain.QuizData, bool) {
	quiz, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("quiz cache read failed", zap.String("key", key), zap.Error(err))
		return domain.QuizData{}, false
	}
	return quiz, ok
}

// PerformanceMessage asks the generative API for a post-game message, with
// no timeout beyond the caller's context, and substitutes the templated
// sentence on any failure.
func (s *QuizService) PerformanceMessage(ctx context.Context, score, totalQuestions int, heroName string) string {
	text, err := s.generator.GenerateContent(ctx, BuildPerformancePrompt(score, totalQuestions, heroName))
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Warn("performance message generation failed", zap.Error(err))
		}
		return FallbackPerformanceMessage(score, totalQuestions, heroName)
	}
	return strings.TrimSpace(text)
}

// SubmitScore persists a finished session and computes the submitter's
// rank as one plus the number of strictly higher stored scores. The insert
// and the count are separate statements; under concurrent submissions the
// rank is a best-effort snapshot.
func (s *QuizService) SubmitScore(ctx context.Context, sub domain.ScoreSubmission) (domain.SubmitResult, error) {
	entry := &domain.LeaderboardEntry{
		PlayerName:     truncate(strings.TrimSpace(sub.PlayerName), maxNameLen),
		HeroName:       truncate(strings.TrimSpace(sub.HeroName), maxNameLen),
		Score:          sub.Score,
		TotalQuestions: sub.TotalQuestions,
		CorrectAnswers: sub.CorrectAnswers,
	}
	if err := s.leaderboard.Insert(ctx, entry); err != nil {
		return domain.SubmitResult{}, fmt.Errorf("insert score: %w", err)
	}

	higher, err := s.leaderboard.CountHigherScores(ctx, entry.Score)
	if err != nil {
		return domain.SubmitResult{}, fmt.Errorf("rank score: %w", err)
	}

	s.feed.Notify()
	return domain.SubmitResult{Success: true, Rank: higher + 1, ID: entry.ID}, nil
}

// Leaderboard returns the filtered, ordered leaderboard page.
func (s *QuizService) Leaderboard(ctx context.Context, filter domain.LeaderboardFilter, limit int) (domain.LeaderboardPage, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	entries, total, err := s.leaderboard.List(ctx, filter.Cutoff(s.clock()), limit)
	if err != nil {
		return domain.LeaderboardPage{}, fmt.Errorf("list leaderboard: %w", err)
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return domain.LeaderboardPage{Entries: entries, TotalCount: total, Filter: filter}, nil
}

// truncate bounds s to n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
