package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"shujaa-quiz-service/internal/domain"
)

// NewDB opens a bun DB over the pgdriver connector.
func NewDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// leaderboardRow is the bun model for the leaderboard table.
type leaderboardRow struct {
	bun.BaseModel `bun:"table:leaderboard,alias:l"`

	ID             int64     `bun:"id,pk,autoincrement"`
	PlayerName     string    `bun:"player_name,notnull"`
	HeroName       string    `bun:"hero_name,notnull"`
	Score          int       `bun:"score,notnull"`
	TotalQuestions int       `bun:"total_questions,notnull"`
	CorrectAnswers int       `bun:"correct_answers,notnull"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r leaderboardRow) entry() domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		ID:             r.ID,
		PlayerName:     r.PlayerName,
		HeroName:       r.HeroName,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		CreatedAt:      r.CreatedAt,
	}
}

// LeaderboardRepository implements app.LeaderboardRepository on Postgres.
type LeaderboardRepository struct {
	db *bun.DB
}

func NewLeaderboardRepository(db *bun.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Insert persists the entry and fills its server-assigned id and createdAt.
func (r *LeaderboardRepository) Insert(ctx context.Context, entry *domain.LeaderboardEntry) error {
	row := &leaderboardRow{
		PlayerName:     entry.PlayerName,
		HeroName:       entry.HeroName,
		Score:          entry.Score,
		TotalQuestions: entry.TotalQuestions,
		CorrectAnswers: entry.CorrectAnswers,
	}
	if _, err := r.db.NewInsert().Model(row).Returning("id, created_at").Exec(ctx); err != nil {
		return fmt.Errorf("insert leaderboard entry: %w", err)
	}
	if row.ID == 0 {
		return domain.ErrNoRowInserted
	}
	entry.ID = row.ID
	entry.CreatedAt = row.CreatedAt
	return nil
}

// CountHigherScores counts entries with a strictly greater score.
func (r *LeaderboardRepository) CountHigherScores(ctx context.Context, score int) (int, error) {
	count, err := r.db.NewSelect().
		Model((*leaderboardRow)(nil)).
		Where("score > ?", score).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count higher scores: %w", err)
	}
	return count, nil
}

// List returns entries created at or after since (zero since means all),
// ordered by score descending with createdAt descending as tie-breaker,
// plus the total count matching the cutoff regardless of the limit.
func (r *LeaderboardRepository) List(ctx context.Context, since time.Time, limit int) ([]domain.LeaderboardEntry, int, error) {
	var rows []leaderboardRow
	q := r.db.NewSelect().
		Model(&rows).
		Order("score DESC").
		Order("created_at DESC").
		Limit(limit)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("select leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.entry())
	}
	return entries, total, nil
}
