package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/careerforge/internal/domain"
)

// GithubRoastRepository implements domain.GithubRoastRepository using SQLite.
type GithubRoastRepository struct {
	db *sql.DB
}

func NewGithubRoastRepository(db *DB) *GithubRoastRepository {
	return &GithubRoastRepository{db: db.SqlDB}
}

func (r *GithubRoastRepository) Create(ctx context.Context, roast *domain.GithubRoast) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO github_roasts (user_id, username, content, created_at) VALUES (?, ?, ?, ?)`,
		roast.UserID, roast.Username, roast.Content, now,
	)
	if err != nil {
		return fmt.Errorf("insert github roast: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	roast.ID = id
	roast.CreatedAt = now
	return nil
}

func (r *GithubRoastRepository) LatestByUser(ctx context.Context, userID int64) (*domain.GithubRoast, error) {
	roast := &domain.GithubRoast{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, username, content, created_at FROM github_roasts
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, userID,
	).Scan(&roast.ID, &roast.UserID, &roast.Username, &roast.Content, &roast.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query latest github roast: %w", err)
	}
	return roast, nil
}

func (r *GithubRoastRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.GithubRoast, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, username, content, created_at FROM github_roasts
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query github roasts: %w", err)
	}
	defer rows.Close()

	var roasts []domain.GithubRoast
	for rows.Next() {
		var g domain.GithubRoast
		if err := rows.Scan(&g.ID, &g.UserID, &g.Username, &g.Content, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan github roast: %w", err)
		}
		roasts = append(roasts, g)
	}
	return roasts, rows.Err()
}
