package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/careerforge/internal/domain"
)

// ATSScanRepository implements domain.ATSScanRepository using SQLite.
// The full analysis is stored as JSON; score and status are duplicated
// into columns for listing.
type ATSScanRepository struct {
	db *sql.DB
}

func NewATSScanRepository(db *DB) *ATSScanRepository {
	return &ATSScanRepository{db: db.SqlDB}
}

const scanColumns = `id, user_id, job_description, resume_filename, resume_key, result, created_at`

func (r *ATSScanRepository) Create(ctx context.Context, scan *domain.ATSScan) error {
	result, err := json.Marshal(scan.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ats_scans (user_id, job_description, resume_filename, resume_key, score, match_status, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.UserID, scan.JobDescription, scan.ResumeFilename, scan.ResumeKey,
		scan.Analysis.ATSScore, scan.Analysis.MatchStatus, string(result), now,
	)
	if err != nil {
		return fmt.Errorf("insert ats scan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	scan.ID = id
	scan.CreatedAt = now
	return nil
}

func (r *ATSScanRepository) GetByID(ctx context.Context, id int64) (*domain.ATSScan, error) {
	scan, err := scanATSScan(r.db.QueryRowContext(ctx,
		`SELECT `+scanColumns+` FROM ats_scans WHERE id = ?`, id))
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
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit,
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanATSScan(row rowScanner) (*domain.ATSScan, error) {
	var (
		s      domain.ATSScan
		result string
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.JobDescription, &s.ResumeFilename, &s.ResumeKey, &result, &s.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(result), &s.Analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return &s, nil
}
