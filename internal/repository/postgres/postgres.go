// Package postgres implements the repositories on PostgreSQL via lib/pq.
// It mirrors the sqlite package and is selected when DATABASE_URL is set.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/migrations"
	schema "github.com/msomdec/careerforge/internal/repository/postgres/migrations"
)

type DB struct {
	SqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a connection pool for the given postgres:// URL.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB, schema.FS, migrations.Postgres)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() *UserRepository                 { return &UserRepository{db: d.SqlDB} }
func (d *DB) LocalAccounts() *LocalAccountRepository { return &LocalAccountRepository{db: d.SqlDB} }
func (d *DB) CoverLetters() *CoverLetterRepository   { return &CoverLetterRepository{db: d.SqlDB} }
func (d *DB) Roasts() *GithubRoastRepository         { return &GithubRoastRepository{db: d.SqlDB} }
func (d *DB) Scans() *ATSScanRepository              { return &ATSScanRepository{db: d.SqlDB} }
func (d *DB) FileStore() domain.FileStore            { return &fileStore{db: d.SqlDB} }

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueConstraintError(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
