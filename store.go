package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msomdec/careerforge/internal/config"
	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/repository/postgres"
	"github.com/msomdec/careerforge/internal/repository/sqlite"
	"github.com/msomdec/careerforge/internal/storage/s3"
)

// store holds the repositories of whichever database is configured.
type store struct {
	db       domain.Database
	users    domain.UserRepository
	accounts domain.LocalAccountRepository
	letters  domain.CoverLetterRepository
	roasts   domain.GithubRoastRepository
	scans    domain.ATSScanRepository
	files    domain.FileStore
}

// openStore connects to Postgres when a database URL is set, SQLite otherwise.
func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("using postgres database")
		return &store{
			db:       db,
			users:    db.Users(),
			accounts: db.LocalAccounts(),
			letters:  db.CoverLetters(),
			roasts:   db.Roasts(),
			scans:    db.Scans(),
			files:    db.FileStore(),
		}, nil
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	slog.Info("using sqlite database", "path", cfg.DatabasePath)
	return &store{
		db:       db,
		users:    db.Users(),
		accounts: db.LocalAccounts(),
		letters:  db.CoverLetters(),
		roasts:   db.Roasts(),
		scans:    db.Scans(),
		files:    db.FileStore(),
	}, nil
}

// fileStore returns the S3 bucket when configured, else the database store.
func (s *store) fileStore(ctx context.Context, cfg config.StorageConfig) (domain.FileStore, error) {
	if !cfg.Enabled() {
		return s.files, nil
	}
	files, err := s3.New(ctx, s3.Config{
		Bucket:    cfg.Bucket,
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("open object storage: %w", err)
	}
	slog.Info("storing resumes in object storage", "bucket", cfg.Bucket)
	return files, nil
}
