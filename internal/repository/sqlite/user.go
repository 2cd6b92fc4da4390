package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/careerforge/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

const userColumns = `id, subject_id, display_name, email, image_url, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (subject_id, display_name, email, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.SubjectID, user.DisplayName, user.Email, user.ImageURL, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *UserRepository) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE subject_id = ?`, subject))
}

// EnsureBySubject inserts the user unless the subject already exists, then
// reads the stored row. Existing profile fields are left untouched.
func (r *UserRepository) EnsureBySubject(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (subject_id, display_name, email, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(subject_id) DO NOTHING`,
		identity.Subject, identity.Name, identity.Email, identity.ImageURL, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return r.GetBySubject(ctx, identity.Subject)
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.SubjectID, &user.DisplayName, &user.Email, &user.ImageURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}
