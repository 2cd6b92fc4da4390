package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/careerforge/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

const userColumns = `id, subject_id, display_name, email, image_url, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (subject_id, display_name, email, image_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		user.SubjectID, user.DisplayName, user.Email, user.ImageURL,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE subject_id = $1`, subject))
}

func (r *UserRepository) EnsureBySubject(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (subject_id, display_name, email, image_url)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (subject_id) DO NOTHING`,
		identity.Subject, identity.Name, identity.Email, identity.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return r.GetBySubject(ctx, identity.Subject)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.SubjectID, &u.DisplayName, &u.Email, &u.ImageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

type LocalAccountRepository struct {
	db *sql.DB
}

func (r *LocalAccountRepository) Create(ctx context.Context, account *domain.LocalAccount) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO local_accounts (subject_id, email, display_name, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		account.SubjectID, account.Email, account.DisplayName, account.PasswordHash,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert local account: %w", err)
	}
	return nil
}

func (r *LocalAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.LocalAccount, error) {
	a := &domain.LocalAccount{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, subject_id, email, display_name, password_hash, created_at
		 FROM local_accounts WHERE email = $1`, email,
	).Scan(&a.ID, &a.SubjectID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query local account by email: %w", err)
	}
	return a, nil
}
