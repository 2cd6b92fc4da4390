package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/careerforge/internal/domain"
)

// CoverLetterRepository implements domain.CoverLetterRepository using SQLite.
type CoverLetterRepository struct {
	db *sql.DB
}

func NewCoverLetterRepository(db *DB) *CoverLetterRepository {
	return &CoverLetterRepository{db: db.SqlDB}
}

// Upsert relies on the UNIQUE(user_id) constraint so concurrent generations
// for one user converge on a single row.
func (r *CoverLetterRepository) Upsert(ctx context.Context, letter *domain.CoverLetter) error {
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cover_letters (user_id, content, company_name, job_title, job_description, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			content = excluded.content,
			company_name = excluded.company_name,
			job_title = excluded.job_title,
			job_description = excluded.job_description,
			status = excluded.status,
			updated_at = excluded.updated_at
		 RETURNING id, created_at`,
		letter.UserID, letter.Content, letter.CompanyName, letter.JobTitle, letter.JobDescription, letter.Status, now, now,
	).Scan(&letter.ID, &letter.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert cover letter: %w", err)
	}

	letter.UpdatedAt = now
	return nil
}

func (r *CoverLetterRepository) GetByUser(ctx context.Context, userID int64) (*domain.CoverLetter, error) {
	l := &domain.CoverLetter{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, content, company_name, job_title, job_description, status, created_at, updated_at
		 FROM cover_letters WHERE user_id = ?`, userID,
	).Scan(&l.ID, &l.UserID, &l.Content, &l.CompanyName, &l.JobTitle, &l.JobDescription, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query cover letter: %w", err)
	}
	return l, nil
}

func (r *CoverLetterRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cover_letters WHERE user_id = ?", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count cover letters: %w", err)
	}
	return count, nil
}
