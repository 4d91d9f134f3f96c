package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"shujaa-quiz-service/internal/domain"
)

// QuizCache is an in-memory quiz cache keyed by normalized hero name.
// A non-positive TTL means entries live for the process lifetime.
type QuizCache struct {
	ttl   time.Duration
	clock func() time.Time
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.QuizData
	expiresAt time.Time
}

func NewQuizCache(ttl time.Duration) *QuizCache {
	return &QuizCache{
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedQuiz),
	}
}

func (c *QuizCache) Get(_ context.Context, key string) (domain.QuizData, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok {
		return domain.QuizData{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(c.clock()) {
		return domain.QuizData{}, false, nil
	}
	return entry.quiz, true, nil
}

func (c *QuizCache) Set(_ context.Context, key string, quiz domain.QuizData) error {
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.clock().Add(c.ttlWithJitter())
	}
	c.mu.Lock()
	c.cache[key] = cachedQuiz{quiz: quiz, expiresAt: expiresAt}
	c.mu.Unlock()
	return nil
}

// Reset drops every cached quiz. Intended for tests.
func (c *QuizCache) Reset() {
	c.mu.Lock()
	c.cache = make(map[string]cachedQuiz)
	c.mu.Unlock()
}

// ttlWithJitter adds up to 10% jitter to spread expirations.
func (c *QuizCache) ttlWithJitter() time.Duration {
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
