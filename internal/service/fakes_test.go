package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/repository/sqlite"
)

// fakeGenerator returns canned replies in order and records every prompt.
type fakeGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *sqlite.DB, subject string) *domain.User {
	t.Helper()
	user, err := db.Users().EnsureBySubject(context.Background(), domain.Identity{Subject: subject, Name: "Test User", Email: subject + "@example.com"})
	if err != nil {
		t.Fatalf("EnsureBySubject: %v", err)
	}
	return user
}
