package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"shujaa-quiz-service/internal/app"
	"shujaa-quiz-service/internal/domain"
	"shujaa-quiz-service/internal/infra/memory"
	"shujaa-quiz-service/internal/infra/postgres"
	pgmigrations "shujaa-quiz-service/internal/infra/postgres/migrations"
)

func TestLeaderboardEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()

	db := postgres.NewDB(dsn)
	defer db.Close()
	runMigrations(t, ctx, db)

	repo := postgres.NewLeaderboardRepository(db)
	generator := failingGenerator{}
	service := app.NewQuizService(generator, memory.NewQuizCache(0), repo, zap.NewNop(), time.Second)

	first, err := service.SubmitScore(ctx, domain.ScoreSubmission{
		PlayerName: "Asha", HeroName: "Tom Mboya",
		Score: 150, TotalQuestions: 10, CorrectAnswers: 8,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !first.Success || first.Rank != 1 || first.ID == 0 {
		t.Fatalf("expected rank 1 with assigned id, got %+v", first)
	}

	second, err := service.SubmitScore(ctx, domain.ScoreSubmission{
		PlayerName: "Juma", HeroName: "Wangari Maathai",
		Score: 200, TotalQuestions: 10, CorrectAnswers: 9,
	})
	if err != nil {
		t.Fatalf("submit second: %v", err)
	}
	if second.Rank != 1 {
		t.Fatalf("higher score should take rank 1, got %d", second.Rank)
	}

	third, err := service.SubmitScore(ctx, domain.ScoreSubmission{
		PlayerName: "Fatuma", HeroName: "Mekatilili wa Menza",
		Score: 90, TotalQuestions: 10, CorrectAnswers: 5,
	})
	if err != nil {
		t.Fatalf("submit third: %v", err)
	}
	if third.Rank != 3 {
		t.Fatalf("lowest score should rank 3, got %d", third.Rank)
	}

	page, err := service.Leaderboard(ctx, domain.FilterAll, 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if page.TotalCount != 3 {
		t.Fatalf("total should ignore limit, got %d", page.TotalCount)
	}
	if len(page.Entries) != 2 || page.Entries[0].PlayerName != "Juma" || page.Entries[1].PlayerName != "Asha" {
		t.Fatalf("wrong ordering: %+v", page.Entries)
	}

	// The week filter covers everything just inserted.
	weekly, err := service.Leaderboard(ctx, domain.FilterWeek, 10)
	if err != nil {
		t.Fatalf("weekly leaderboard: %v", err)
	}
	if weekly.TotalCount != 3 {
		t.Fatalf("week filter should match all fresh entries, got %d", weekly.TotalCount)
	}
}

func TestLeaderboardRepositoryTieBreak(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()

	db := postgres.NewDB(dsn)
	defer db.Close()
	runMigrations(t, ctx, db)

	repo := postgres.NewLeaderboardRepository(db)
	names := []string{"First", "Second"}
	for _, name := range names {
		entry := &domain.LeaderboardEntry{
			PlayerName: name, HeroName: "Tom Mboya",
			Score: 100, TotalQuestions: 10, CorrectAnswers: 6,
		}
		if err := repo.Insert(ctx, entry); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
		// Keep created_at distinct so the tie-break is deterministic.
		time.Sleep(50 * time.Millisecond)
	}

	entries, total, err := repo.List(ctx, time.Time{}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("total %d", total)
	}
	if entries[0].PlayerName != "Second" {
		t.Fatalf("tied scores should order newest first, got %+v", entries)
	}

	higher, err := repo.CountHigherScores(ctx, 100)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if higher != 0 {
		t.Fatalf("no entry is strictly higher than 100, got %d", higher)
	}
}

type failingGenerator struct{}

func (failingGenerator) GenerateContent(context.Context, string) (string, error) {
	return "", errors.New("generator not configured in integration tests")
}

func runMigrations(t *testing.T, ctx context.Context, db *bun.DB) {
	t.Helper()
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "shujaa", "POSTGRES_PASSWORD": "shujaapass", "POSTGRES_DB": "shujaadb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://shujaa:shujaapass@%s:%s/shujaadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
