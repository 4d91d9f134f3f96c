package memory

import (
	"context"
	"testing"
	"time"

	"shujaa-quiz-service/internal/domain"
)

func sampleQuiz(hero string) domain.QuizData {
	return domain.QuizData{
		HeroName: hero,
		HeroBio:  "bio",
		Questions: []domain.QuizQuestion{{
			ID:            1,
			Question:      "Capital of Kenya?",
			Type:          domain.TypeMultipleChoice,
			Options:       []string{"Nairobi", "Mombasa", "Kisumu", "Nakuru"},
			CorrectAnswer: domain.LetterAnswer("A"),
			Difficulty:    domain.DifficultyEasy,
		}},
	}
}

func TestQuizCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewQuizCache(time.Hour)

	if _, ok, err := cache.Get(ctx, "wangari maathai"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	want := sampleQuiz("Wangari Maathai")
	if err := cache.Set(ctx, "wangari maathai", want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := cache.Get(ctx, "wangari maathai")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.HeroName != want.HeroName || len(got.Questions) != 1 {
		t.Fatalf("cached quiz corrupted: %+v", got)
	}

	if _, ok, _ := cache.Get(ctx, "tom mboya"); ok {
		t.Fatal("hit for key that was never set")
	}
}

func TestQuizCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cache := NewQuizCache(time.Minute)
	cache.clock = func() time.Time { return now }

	if err := cache.Set(ctx, "hero", sampleQuiz("Hero")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "hero"); !ok {
		t.Fatal("expected hit before expiry")
	}

	// Jitter adds at most 10%, so 2x TTL is past any expiry.
	now = now.Add(2 * time.Minute)
	if _, ok, _ := cache.Get(ctx, "hero"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestQuizCacheZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cache := NewQuizCache(0)
	cache.clock = func() time.Time { return now }

	if err := cache.Set(ctx, "hero", sampleQuiz("Hero")); err != nil {
		t.Fatalf("set: %v", err)
	}
	now = now.Add(24 * 365 * time.Hour)
	if _, ok, _ := cache.Get(ctx, "hero"); !ok {
		t.Fatal("zero TTL entry expired")
	}
}

func TestQuizCacheReset(t *testing.T) {
	ctx := context.Background()
	cache := NewQuizCache(0)
	if err := cache.Set(ctx, "hero", sampleQuiz("Hero")); err != nil {
		t.Fatalf("set: %v", err)
	}
	cache.Reset()
	if _, ok, _ := cache.Get(ctx, "hero"); ok {
		t.Fatal("entry survived Reset")
	}
}
