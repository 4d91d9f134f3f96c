package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"shujaa-quiz-service/internal/domain"
)

// LeaderboardStore is an in-memory implementation of
// app.LeaderboardRepository, used when no Postgres URL is configured and in
// tests.
type LeaderboardStore struct {
	clock func() time.Time

	mu      sync.RWMutex
	nextID  int64
	entries []domain.LeaderboardEntry
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{clock: time.Now, nextID: 1}
}

// NewLeaderboardStoreWithClock is test-only for deterministic timestamps.
func NewLeaderboardStoreWithClock(now func() time.Time) *LeaderboardStore {
	return &LeaderboardStore{clock: now, nextID: 1}
}

func (s *LeaderboardStore) Insert(_ context.Context, entry *domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID
	entry.CreatedAt = s.clock()
	s.nextID++
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *LeaderboardStore) CountHigherScores(_ context.Context, score int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.entries {
		if e.Score > score {
			count++
		}
	}
	return count, nil
}

func (s *LeaderboardStore) List(_ context.Context, since time.Time, limit int) ([]domain.LeaderboardEntry, int, error) {
	s.mu.RLock()
	matched := make([]domain.LeaderboardEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if !since.IsZero() && e.CreatedAt.Before(since) {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Score != matched[j].Score {
			return matched[i].Score > matched[j].Score
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}
