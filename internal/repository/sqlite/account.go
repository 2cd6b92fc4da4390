package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/careerforge/internal/domain"
)

// LocalAccountRepository implements domain.LocalAccountRepository using SQLite.
type LocalAccountRepository struct {
	db *sql.DB
}

func NewLocalAccountRepository(db *DB) *LocalAccountRepository {
	return &LocalAccountRepository{db: db.SqlDB}
}

func (r *LocalAccountRepository) Create(ctx context.Context, account *domain.LocalAccount) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO local_accounts (subject_id, email, display_name, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		account.SubjectID, account.Email, account.DisplayName, account.PasswordHash, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert local account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	account.ID = id
	account.CreatedAt = now
	return nil
}

func (r *LocalAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.LocalAccount, error) {
	a := &domain.LocalAccount{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, subject_id, email, display_name, password_hash, created_at
		 FROM local_accounts WHERE email = ?`, email,
	).Scan(&a.ID, &a.SubjectID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query local account by email: %w", err)
	}
	return a, nil
}
