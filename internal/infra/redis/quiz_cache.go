package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"shujaa-quiz-service/internal/domain"
)

// QuizCache stores generated quizzes as JSON blobs in Redis, keyed by
// normalized hero name. A non-positive TTL stores entries without expiry.
type QuizCache struct {
	client *redis.Client
	ttl    time.Duration
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) Get(ctx context.Context, key string) (domain.QuizData, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuizData{}, false, nil
	}
	if err != nil {
		return domain.QuizData{}, false, fmt.Errorf("redis get quiz: %w", err)
	}

	var quiz domain.QuizData
	if err := json.Unmarshal(data, &quiz); err != nil {
		// Unreadable entries are dropped and treated as a miss.
		_ = c.client.Del(ctx, c.key(key)).Err()
		return domain.QuizData{}, false, nil
	}
	return quiz, true, nil
}

func (c *QuizCache) Set(ctx context.Context, key string, quiz domain.QuizData) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttlWithJitter()).Err(); err != nil {
		return fmt.Errorf("redis set quiz: %w", err)
	}
	return nil
}

func (c *QuizCache) key(heroKey string) string {
	return "quiz:hero:" + heroKey
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
