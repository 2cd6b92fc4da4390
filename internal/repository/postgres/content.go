package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/msomdec/careerforge/internal/domain"
)

type CoverLetterRepository struct {
	db *sql.DB
}

func (r *CoverLetterRepository) Upsert(ctx context.Context, letter *domain.CoverLetter) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cover_letters (user_id, content, company_name, job_title, job_description, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
			content = EXCLUDED.content,
			company_name = EXCLUDED.company_name,
			job_title = EXCLUDED.job_title,
			job_description = EXCLUDED.job_description,
			status = EXCLUDED.status,
			updated_at = now()
		 RETURNING id, created_at, updated_at`,
		letter.UserID, letter.Content, letter.CompanyName, letter.JobTitle, letter.JobDescription, letter.Status,
	).Scan(&letter.ID, &letter.CreatedAt, &letter.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert cover letter: %w", err)
	}
	return nil
}

func (r *CoverLetterRepository) GetByUser(ctx context.Context, userID int64) (*domain.CoverLetter, error) {
	l := &domain.CoverLetter{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, content, company_name, job_title, job_description, status, created_at, updated_at
		 FROM cover_letters WHERE user_id = $1`, userID,
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
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cover_letters WHERE user_id = $1", userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cover letters: %w", err)
	}
	return count, nil
}

type GithubRoastRepository struct {
	db *sql.DB
}

func (r *GithubRoastRepository) Create(ctx context.Context, roast *domain.GithubRoast) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO github_roasts (user_id, username, content) VALUES ($1, $2, $3) RETURNING id, created_at`,
		roast.UserID, roast.Username, roast.Content,
	).Scan(&roast.ID, &roast.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert github roast: %w", err)
	}
	return nil
}

func (r *GithubRoastRepository) LatestByUser(ctx context.Context, userID int64) (*domain.GithubRoast, error) {
	g := &domain.GithubRoast{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, username, content, created_at FROM github_roasts
		 WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, userID,
	).Scan(&g.ID, &g.UserID, &g.Username, &g.Content, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query latest github roast: %w", err)
	}
	return g, nil
}

func (r *GithubRoastRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.GithubRoast, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, username, content, created_at FROM github_roasts
		 WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`, userID, limit,
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

type ATSScanRepository struct {
	db *sql.DB
}

const scanColumns = `id, user_id, job_description, resume_filename, resume_key, result, created_at`

func (r *ATSScanRepository) Create(ctx context.Context, scan *domain.ATSScan) error {
	result, err := json.Marshal(scan.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO ats_scans (user_id, job_description, resume_filename, resume_key, score, match_status, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		scan.UserID, scan.JobDescription, scan.ResumeFilename, scan.ResumeKey,
		scan.Analysis.ATSScore, scan.Analysis.MatchStatus, string(result),
	).Scan(&scan.ID, &scan.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert ats scan: %w", err)
	}
	return nil
}

func (r *ATSScanRepository) GetByID(ctx context.Context, id int64) (*domain.ATSScan, error) {
	scan, err := scanATSScan(r.db.QueryRowContext(ctx, `SELECT `+scanColumns+` FROM ats_scans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query ats scan: %w", err)
	}
	return scan, nil
}

func (r *ATSScanRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.ATSScan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scanColumns+` FROM ats_scans
		 WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query ats scans: %w", err)
	}
	defer rows.Close()

	var scans []domain.ATSScan
	for rows.Next() {
		scan, err := scanATSScan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ats scan: %w", err)
		}
		scans = append(scans, *scan)
	}
	return scans, rows.Err()
}

func scanATSScan(row interface{ Scan(...any) error }) (*domain.ATSScan, error) {
	var (
		s      domain.ATSScan
		result []byte
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.JobDescription, &s.ResumeFilename, &s.ResumeKey, &result, &s.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(result, &s.Analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return &s, nil
}
