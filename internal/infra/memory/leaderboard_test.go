package memory

import (
	"context"
	"testing"
	"time"

	"shujaa-quiz-service/internal/domain"
)

func seedEntries(t *testing.T, store *LeaderboardStore, scores ...int) {
	t.Helper()
	ctx := context.Background()
	for _, score := range scores {
		err := store.Insert(ctx, &domain.LeaderboardEntry{
			PlayerName: "player", HeroName: "hero",
			Score: score, TotalQuestions: 10, CorrectAnswers: score / 10,
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestLeaderboardInsertAssignsIDAndTimestamp(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	store := NewLeaderboardStoreWithClock(func() time.Time { return now })

	entry := &domain.LeaderboardEntry{PlayerName: "Asha", HeroName: "Tom Mboya", Score: 150}
	if err := store.Insert(context.Background(), entry); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if entry.ID != 1 || !entry.CreatedAt.Equal(now) {
		t.Fatalf("entry not filled: id=%d createdAt=%v", entry.ID, entry.CreatedAt)
	}

	second := &domain.LeaderboardEntry{PlayerName: "Juma", HeroName: "Wangari Maathai", Score: 90}
	if err := store.Insert(context.Background(), second); err != nil {
		t.Fatalf("insert second: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("ids not sequential: %d", second.ID)
	}
}

func TestLeaderboardCountHigherScores(t *testing.T) {
	store := NewLeaderboardStore()
	seedEntries(t, store, 200, 150, 150, 90)

	cases := []struct {
		score int
		want  int
	}{
		{250, 0},
		{200, 0}, // strictly higher only
		{150, 1},
		{90, 3},
		{0, 4},
	}
	for _, tc := range cases {
		got, err := store.CountHigherScores(context.Background(), tc.score)
		if err != nil {
			t.Fatalf("count for %d: %v", tc.score, err)
		}
		if got != tc.want {
			t.Errorf("score %d: got %d higher, want %d", tc.score, got, tc.want)
		}
	}
}

func TestLeaderboardListOrdering(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	store := NewLeaderboardStoreWithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
	seedEntries(t, store, 150, 200, 150)

	entries, total, err := store.List(context.Background(), time.Time{}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(entries) != 3 {
		t.Fatalf("got %d entries, total %d", len(entries), total)
	}
	if entries[0].Score != 200 {
		t.Fatalf("highest score not first: %+v", entries[0])
	}
	// Tied scores: the more recent entry comes first.
	if entries[1].ID != 3 || entries[2].ID != 1 {
		t.Fatalf("tie not broken by recency: ids %d, %d", entries[1].ID, entries[2].ID)
	}
}

func TestLeaderboardListLimitKeepsTotal(t *testing.T) {
	store := NewLeaderboardStore()
	seedEntries(t, store, 10, 20, 30, 40, 50)

	entries, total, err := store.List(context.Background(), time.Time{}, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("limit ignored: %d entries", len(entries))
	}
	if total != 5 {
		t.Fatalf("total should ignore limit, got %d", total)
	}
	if entries[0].Score != 50 || entries[1].Score != 40 {
		t.Fatalf("wrong page: %d, %d", entries[0].Score, entries[1].Score)
	}
}

func TestLeaderboardListSinceCutoff(t *testing.T) {
	stamps := []time.Time{
		time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), // exactly at the cutoff
		time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
	i := 0
	store := NewLeaderboardStoreWithClock(func() time.Time {
		ts := stamps[i]
		i++
		return ts
	})
	seedEntries(t, store, 10, 20, 30)

	cutoff := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	entries, total, err := store.List(context.Background(), cutoff, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Fatalf("cutoff not applied: %d entries, total %d", len(entries), total)
	}
	for _, e := range entries {
		if e.CreatedAt.Before(cutoff) {
			t.Fatalf("entry before cutoff leaked: %v", e.CreatedAt)
		}
	}
}
